package dtos

import (
	"encoding/json"
	"encoding/xml"

	"github.com/leasingsys/leasing-service/internal/models"
)

// LeasingRequest is the boundary view for create. The client must leave ID at
// 0 ("assign one for me"); any other value is rejected.
type LeasingRequest struct {
	XMLName       xml.Name `json:"-" xml:"leasing"`
	ID            int64    `json:"id" xml:"id"`
	Name          string   `json:"name" xml:"name" validate:"required"`
	Details       string   `json:"details" xml:"details"`
	ImageURL      string   `json:"imageUrl" xml:"imageUrl"`
	Amenity       string   `json:"amenity" xml:"amenity"`
	Occupancy     int      `json:"occupancy" xml:"occupancy"`
	SquareFootage int      `json:"squareFootage" xml:"squareFootage"`
	Rate          float64  `json:"rate" xml:"rate"`
}

// LeasingResponse mirrors every canonical field except the timestamps.
type LeasingResponse struct {
	XMLName       xml.Name `json:"-" xml:"leasing"`
	ID            int64    `json:"id" xml:"id"`
	Name          string   `json:"name" xml:"name"`
	Details       string   `json:"details" xml:"details"`
	ImageURL      string   `json:"imageUrl" xml:"imageUrl"`
	Amenity       string   `json:"amenity" xml:"amenity"`
	Occupancy     int      `json:"occupancy" xml:"occupancy"`
	SquareFootage int      `json:"squareFootage" xml:"squareFootage"`
	Rate          float64  `json:"rate" xml:"rate"`
}

func NewLeasingResponse(l *models.Leasing) LeasingResponse {
	return LeasingResponse{
		ID:            l.ID,
		Name:          l.Name,
		Details:       l.Details,
		ImageURL:      l.ImageURL,
		Amenity:       l.Amenity,
		Occupancy:     l.Occupancy,
		SquareFootage: l.SquareFootage,
		Rate:          l.Rate,
	}
}

// LeasingListResponse renders as a bare array in JSON and as a <leasings>
// wrapper element in XML.
type LeasingListResponse struct {
	XMLName xml.Name          `json:"-" xml:"leasings"`
	Items   []LeasingResponse `json:"-" xml:"leasing"`
}

func NewLeasingListResponse(list []*models.Leasing) LeasingListResponse {
	items := make([]LeasingResponse, 0, len(list))
	for _, l := range list {
		items = append(items, NewLeasingResponse(l))
	}
	return LeasingListResponse{Items: items}
}

func (lr LeasingListResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(lr.Items)
}
