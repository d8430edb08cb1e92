package main

import (
	"github.com/spf13/cobra"

	"github.com/amiaverse/amiablog/config"
	"github.com/amiaverse/amiablog/internal/staticify"
)

func exportCMD() *cobra.Command {
	var cfgPath string
	var destination string
	var removeExisting bool
	var export = &cobra.Command{
		Use:   "export",
		Short: "Generate the static site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			return staticify.New(cfg, destination, removeExisting).Run()
		},
	}
	export.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./amiablog.yaml)")
	export.Flags().StringVar(&destination, "destination", "dist", "destination directory")
	export.Flags().BoolVar(&removeExisting, "remove-existing", false, "delete the destination directory before writing")

	return export
}
