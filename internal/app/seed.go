package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	"github.com/leasingsys/leasing-service/internal/models"
	"github.com/leasingsys/leasing-service/internal/repositories"
	"github.com/leasingsys/leasing-service/internal/utils"
)

const sampleDetails = "Fusce 11 tincidunt maximus leo, sed scelerisque massa auctor " +
	"sit amet. Donec ex mauris, hendrerit quis nibh ac, efficitur fringilla enim."

// SampleLeasings returns the five fixed demo records every fresh store
// starts with.
func SampleLeasings() []*models.Leasing {
	return []*models.Leasing{
		{Name: "Royal Villa", Details: sampleDetails, ImageURL: "https://dotnetmastery.com/bluevillaimages/villa3.jpg", Occupancy: 4, SquareFootage: 550, Rate: 200},
		{Name: "Premium Pool Villa", Details: sampleDetails, ImageURL: "https://dotnetmastery.com/bluevillaimages/villa1.jpg", Occupancy: 4, SquareFootage: 550, Rate: 300},
		{Name: "Luxury Pool Villa", Details: sampleDetails, ImageURL: "https://dotnetmastery.com/bluevillaimages/villa4.jpg", Occupancy: 4, SquareFootage: 750, Rate: 400},
		{Name: "Diamond Villa", Details: sampleDetails, ImageURL: "https://dotnetmastery.com/bluevillaimages/villa5.jpg", Occupancy: 4, SquareFootage: 900, Rate: 550},
		{Name: "Diamond Pool Villa", Details: sampleDetails, ImageURL: "https://dotnetmastery.com/bluevillaimages/villa2.jpg", Occupancy: 4, SquareFootage: 1100, Rate: 600},
	}
}

// Helper to check for unique violation error (PostgreSQL specific code)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SeedSampleLeasings inserts the demo records, skipping any that already
// exist so restarts are harmless.
func SeedSampleLeasings(repo repositories.LeasingRepository) error {
	ctx := context.Background()

	for _, l := range SampleLeasings() {
		if err := repo.Create(ctx, l); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Infof("Sample leasing %q already present; skipping.", l.Name)
				continue
			}
			return fmt.Errorf("insert sample leasing %q: %w", l.Name, err)
		}
		utils.Logger.Infof("Seeded sample leasing %q (id=%d)", l.Name, l.ID)
	}
	return nil
}
