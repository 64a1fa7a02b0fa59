package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/collegepredictor/internal/app/models"
	appRepos "github.com/yigit/collegepredictor/internal/app/repositories"
	"github.com/yigit/collegepredictor/internal/db"
)

// DemoOfferings is a small dataset for local development
var DemoOfferings = []appModels.Offering{
	{CollegeName: "X College", BranchName: "CSE", BranchCode: "CS01", CollegeCode: "1001", Community: "OC", District: "Chennai", AverageCutoff: 150.5},
	{CollegeName: "Y College", BranchName: "ECE", BranchCode: "EC01", CollegeCode: "1002", Community: "OC", District: "Chennai", AverageCutoff: 140.0},
	{CollegeName: "Z College", BranchName: "MECH", BranchCode: "ME01", CollegeCode: "1003", Community: "BC", District: "Madurai", AverageCutoff: 132.25},
	{CollegeName: "Z College", BranchName: "CSE", BranchCode: "CS01", CollegeCode: "1003", Community: "BC", District: "Madurai", AverageCutoff: 171.0},
	{CollegeName: "W College", BranchName: "CIVIL", BranchCode: "CE01", CollegeCode: "1004", Community: "MBC", District: appModels.UnknownDistrict, AverageCutoff: 118.75},
}

// DemoLocations matches the institutions of DemoOfferings
var DemoLocations = []appModels.CollegeLocation{
	{Code: "1001", CollegeName: "X College", CollegeDistrict: "Chennai"},
	{Code: "1002", CollegeName: "Y College", CollegeDistrict: "Chennai"},
	{Code: "1003", CollegeName: "Z College", CollegeDistrict: "Madurai"},
	{Code: "1004", CollegeName: "W College", CollegeDistrict: "Coimbatore"},
}

// CreateDefaultData loads the demo dataset when the offerings table is empty.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (offerings/locations)...")

	count, err := repos.OfferingRepository.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count offerings: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("offerings", count).Msg("Offerings already present, skipping seed")
		return nil
	}

	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := repos.OfferingRepository.BulkInsert(ctx, tx, DemoOfferings); err != nil {
			return err
		}
		_, err := repos.CollegeLocationRepository.BulkInsert(ctx, tx, DemoLocations)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	lgr.Info().
		Int("offerings", len(DemoOfferings)).
		Int("locations", len(DemoLocations)).
		Msg("Default data created")
	return nil
}
