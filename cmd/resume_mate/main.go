// Package main provides the resume-mate CLI: maintain a master profile and
// tailor it to individual job descriptions.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "resume-mate"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "resume_mate",
	Short: "Tailor a master career profile to individual job descriptions",
	Long: "resume-mate keeps your full career history in one master profile and, " +
		"given a job description, selects and rewrites the most relevant entries " +
		"into a tailored, schema-validated resume.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+app+".yaml in the current directory)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "path to the master profile file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	for _, flag := range []string{"profile", "debug", "json"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			log.Fatalf("binding --%s flag: %v", flag, err)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional; flags and environment cover everything.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}
