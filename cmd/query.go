package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"SafeHelp-App/internal/application"
	"SafeHelp-App/internal/config"
	"SafeHelp-App/internal/domain/helper"
	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/infrastructure/geolocation"
	"SafeHelp-App/internal/presenter"
	repoImpl "SafeHelp-App/internal/repository"
	"SafeHelp-App/internal/usecase"
)

var (
	category string
	userLat  float64
	userLng  float64
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List available city datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(ctx context.Context, catalog application.CatalogService, _ *config.Config) error {
			cities, err := catalog.Cities(ctx)
			if err != nil {
				return err
			}
			for _, c := range cities {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Slug, c.Name)
			}
			return nil
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories of a city dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(ctx context.Context, catalog application.CatalogService, cfg *config.Config) error {
			categories, err := catalog.Categories(ctx, cfg.DefaultCity)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(categories, "\n"))
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print resource listings, ordered by distance when --lat/--lng are given",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := locationProvider(cmd)
		return withCatalog(cmd, func(ctx context.Context, catalog application.CatalogService, cfg *config.Config) error {
			sessions := usecase.NewSessionUseCase(catalog, repoImpl.NewMemorySessionsRepository(),
				cfg.Fallback, cfg.SessionTTL, nil)

			session, _, err := sessions.CreateSession(ctx, cfg.DefaultCity)
			if err != nil {
				return err
			}
			if _, err := sessions.AwaitLocation(ctx, session.ID, provider); err != nil {
				return err
			}
			view, err := sessions.SelectCategory(ctx, session.ID, category)
			if err != nil {
				return err
			}
			printListing(cmd.OutOrStdout(), view)
			return nil
		})
	},
}

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Print the nearest resource of a category to --lat/--lng",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
			return fmt.Errorf("--lat と --lng を指定してください")
		}
		return withCatalog(cmd, func(ctx context.Context, catalog application.CatalogService, cfg *config.Config) error {
			resources, err := catalog.Resources(ctx, cfg.DefaultCity)
			if err != nil {
				return err
			}
			from := model.LatLng{Lat: userLat, Lng: userLng}
			nearest, ok := helper.Nearest(helper.FilterByCategory(resources, category), from)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no %s resources with coordinates in %s\n", category, cfg.DefaultCity)
				return nil
			}
			coord, _ := nearest.Coordinate()
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", nearest.Name, nearest.Address,
				presenter.FormatMiles(helper.Distance(from, coord)))
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{listCmd, nearestCmd} {
		c.Flags().StringVar(&category, "category", model.CategoryAll, "Category filter")
		c.Flags().Float64Var(&userLat, "lat", 0, "User latitude")
		c.Flags().Float64Var(&userLng, "lng", 0, "User longitude")
	}
}

// locationProvider は--lat/--lngが両方指定されていれば固定座標、なければ取得失敗を返すプロバイダー
func locationProvider(cmd *cobra.Command) geolocation.Provider {
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		return geolocation.StaticProvider{Position: model.LatLng{Lat: userLat, Lng: userLng}}
	}
	return geolocation.UnavailableProvider{}
}

func withCatalog(cmd *cobra.Command, fn func(ctx context.Context, catalog application.CatalogService, cfg *config.Config) error) error {
	ctx := cmd.Context()

	logger, err := zap.NewDevelopment(zap.IncreaseLevel(zap.WarnLevel))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	repo, closeRepo, err := newResourcesRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	return fn(ctx, application.NewCatalogService(repo, logger), cfg)
}

func printListing(w io.Writer, view model.View) {
	if view.LocationError {
		fmt.Fprintln(w, "location unavailable; showing dataset order")
	}
	for _, card := range presenter.Listing(view) {
		fmt.Fprintf(w, "%s [%s]\n", card.Name, card.Category)
		fmt.Fprintf(w, "  %s\n", card.Address)
		fmt.Fprintf(w, "  Hours: %s\n", card.Hours)
		fmt.Fprintf(w, "  Contact: %s\n", card.Contact)
		fmt.Fprintf(w, "  Youth Friendly: %s\n", card.YouthFriendly)
		if card.Distance != "" {
			fmt.Fprintf(w, "  Distance: %s\n", card.Distance)
		}
		fmt.Fprintf(w, "  %s\n", card.MapsURL)
	}
}
