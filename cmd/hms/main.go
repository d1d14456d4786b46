package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/cli"
	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/history"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/person"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/domain/treatment"
	"github.com/hms/hms/internal/platform/authz"
	"github.com/hms/hms/internal/platform/idgen"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms",
		Short: "Hospital Management System console",
	}

	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole()
		},
	}
}

func runConsole() error {
	// Logger
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	// Stores
	ids := idgen.New()
	staffRepo := staff.NewMemoryRepository()
	patientRepo := patient.NewMemoryRepository()
	appointmentRepo := appointment.NewMemoryRepository()
	rxRepo := prescription.NewMemoryRepository()
	treatmentRepo := treatment.NewMemoryRepository()

	// Services
	svc := cli.Services{
		Staff:         staff.NewService(staffRepo, ids, logger),
		Patients:      patient.NewService(patientRepo, staffRepo, ids, logger),
		Appointments:  appointment.NewService(appointmentRepo, patientRepo, staffRepo, ids, logger),
		Prescriptions: prescription.NewService(rxRepo, patientRepo, ids, logger),
		Treatments:    treatment.NewService(treatmentRepo, patientRepo, ids, logger),
		History:       history.NewService(patientRepo, staffRepo, appointmentRepo, rxRepo, treatmentRepo, logger),
	}

	ctx := context.Background()
	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, svc); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
		logger.Info().Msg("seeded demo data")
	}

	app := cli.NewApp(os.Stdin, os.Stdout, cfg.HospitalName, cfg.SessionIdleTimeout, svc, logger)
	return app.Run(ctx)
}

// seedDemoData loads a small working data set so the console is usable
// right away: one admin, two doctors, one nurse and two patients, with
// one patient already assigned.
func seedDemoData(ctx context.Context, svc cli.Services) error {
	// Records can only be created by an admin, so seeding runs as a
	// transient bootstrap identity that is never stored.
	boot := &staff.Staff{StaffID: "S0", Name: "bootstrap", Role: authz.RoleAdmin}

	if _, err := svc.Staff.OnboardAdmin(ctx, boot, "Alice Admin", 42, person.GenderFemale, "Administration"); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	house, err := svc.Staff.OnboardDoctor(ctx, boot, "Gregory House", 50, person.GenderMale, "Diagnostics", "Diagnostic Medicine")
	if err != nil {
		return fmt.Errorf("seed doctor: %w", err)
	}
	if _, err := svc.Staff.OnboardDoctor(ctx, boot, "Meredith Grey", 38, person.GenderFemale, "Surgery", "General Surgery"); err != nil {
		return fmt.Errorf("seed doctor: %w", err)
	}
	if _, err := svc.Staff.OnboardNurse(ctx, boot, "Carla Espinosa", 35, person.GenderFemale, "Diagnostics", "Ward A"); err != nil {
		return fmt.Errorf("seed nurse: %w", err)
	}

	john, err := svc.Patients.Onboard(ctx, boot, "John Smith", 60, person.GenderMale)
	if err != nil {
		return fmt.Errorf("seed patient: %w", err)
	}
	if _, err := svc.Patients.Onboard(ctx, boot, "Jane Doe", 30, person.GenderFemale); err != nil {
		return fmt.Errorf("seed patient: %w", err)
	}

	if err := svc.Patients.AssignToDoctor(ctx, boot, john.PatientID, house.StaffID); err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}
	if err := svc.Patients.AddMedicalHistory(ctx, boot, john.PatientID, "Hypertension diagnosed 2019"); err != nil {
		return fmt.Errorf("seed history: %w", err)
	}
	return nil
}
