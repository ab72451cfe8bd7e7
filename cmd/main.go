package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile string
	city    string
)

var rootCmd = &cobra.Command{
	Use:   "safehelp",
	Short: "Community resource finder for food, shelter, medical and legal help",
	Long:  `Serves city resource listings with category filtering, distance ordering and map centering.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", ".env file path (default: ./.env)")
	rootCmd.PersistentFlags().StringVarP(&city, "city", "c", "", "City dataset slug (default: DEFAULT_CITY)")

	rootCmd.AddCommand(serveCmd, citiesCmd, categoriesCmd, listCmd, nearestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
