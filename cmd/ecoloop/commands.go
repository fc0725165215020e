package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dkovacs/ecoloop/internal/config"
	"github.com/dkovacs/ecoloop/internal/db"
	"github.com/dkovacs/ecoloop/internal/predictor"
	"github.com/dkovacs/ecoloop/internal/services"
)

func openDB(cfg config.Config) (*gorm.DB, error) {
	conn, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openDB(config.Load()); err != nil {
				return err
			}
			fmt.Println("Migrations completed")
			return nil
		},
	}
}

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the demo catalog, suppliers and instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(config.Load())
			if err != nil {
				return err
			}
			if err := db.Seed(conn); err != nil {
				return err
			}
			fmt.Println("Seeding completed")
			return nil
		},
	}
}

func statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard KPIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(config.Load())
			if err != nil {
				return err
			}
			stats, err := services.NewScoringService(conn).Dashboard()
			if err != nil {
				return err
			}
			fmt.Printf("Products:   %d\n", stats.Products)
			fmt.Printf("Components: %d\n", stats.Components)
			fmt.Printf("Materials:  %d\n", stats.Materials)
			fmt.Printf("Suppliers:  %d\n", stats.Suppliers)
			fmt.Printf("Instances:  %d\n", stats.Instances)
			fmt.Printf("Events:     %d (recycled %d, disposed %d, repaired %d)\n",
				stats.Events, stats.Recycled, stats.Disposed, stats.Repaired)
			fmt.Printf("Overall recyclability score: %.2f\n", stats.OverallRecyclabilityScore)
			return nil
		},
	}
}

func trainCommand() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Extract the training set and fit the recycling outcome predictor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			trainer := cfg.Trainer
			if configFile != "" {
				var err error
				trainer, err = config.LoadTrainerFile(configFile, trainer)
				if err != nil {
					return err
				}
			}
			conn, err := openDB(cfg)
			if err != nil {
				return err
			}

			logger, err := buildLogger(cfg.Env)
			if err != nil {
				return err
			}
			defer logger.Sync()

			rows, err := services.NewFeatureService(conn).ExtractTrainingSet()
			if err != nil {
				return err
			}
			examples := make([]predictor.Example, len(rows))
			for i, r := range rows {
				examples[i] = predictor.Example{Features: r.Vector(), Label: r.Label}
			}

			report, err := predictor.Train(logger, examples, predictor.Config{
				Holdout:      trainer.Holdout,
				Seed:         trainer.Seed,
				LearningRate: trainer.LearningRate,
				Epochs:       trainer.Epochs,
				ModelPath:    trainer.ModelPath,
				ScalerPath:   trainer.ScalerPath,
			})
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "YAML trainer config overriding environment settings")
	return cmd
}

func predictCommand() *cobra.Command {
	var instanceID uint
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the recycling outcome for a product instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			conn, err := openDB(cfg)
			if err != nil {
				return err
			}
			scaler, err := predictor.LoadScaler(cfg.Trainer.ScalerPath)
			if err != nil {
				return err
			}
			model, err := predictor.LoadModel(cfg.Trainer.ModelPath)
			if err != nil {
				return err
			}
			row, err := services.NewFeatureService(conn).FeaturesForInstance(instanceID)
			if err != nil {
				return err
			}
			scaled, err := scaler.Transform([][]float64{row.Vector()})
			if err != nil {
				return err
			}
			prob := model.Prob(scaled[0])
			outcome := "disposed"
			if model.Predict(scaled[0]) == 1 {
				outcome = "recycled"
			}
			fmt.Printf("Instance %d: predicted %s (recycling probability %.3f)\n", instanceID, outcome, prob)
			return nil
		},
	}
	cmd.Flags().UintVar(&instanceID, "instance", 0, "Instance ID to predict")
	_ = cmd.MarkFlagRequired("instance")
	return cmd
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printReport(report *predictor.Report) {
	fmt.Printf("Run %s: %d samples (%d train / %d test)\n",
		report.RunID, report.Samples, report.TrainSize, report.TestSize)
	fmt.Printf("Accuracy: %.2f%%\n", report.Evaluation.Accuracy*100)
	classes := make([]int, 0, len(report.Evaluation.Classes))
	for class := range report.Evaluation.Classes {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	for _, class := range classes {
		m := report.Evaluation.Classes[class]
		fmt.Printf("  class %d: precision %.2f recall %.2f f1 %.2f support %d\n",
			class, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Printf("Model: %s\nScaler: %s\n", report.ModelPath, report.ScalerPath)
}
