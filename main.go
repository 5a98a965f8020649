package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"seqlab/api/contexts"
	gam "seqlab/api/middleware"
	"seqlab/api/models"
	serviceInfoConst "seqlab/api/models/constants/service-info"
	exportMvc "seqlab/api/mvc/export"
	sequencesMvc "seqlab/api/mvc/sequences"
	serviceInfoMvc "seqlab/api/mvc/service-info"
	variantsMvc "seqlab/api/mvc/variants"
	"seqlab/api/repositories/memory"
	"seqlab/api/services/janitor"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	// Optional yaml overlay
	if configFile := os.Getenv("SEQLAB_CONFIG_FILE"); configFile != "" {
		if yamlErr := cfg.LoadFromYamlFile(configFile); yamlErr != nil {
			fmt.Println(yamlErr)
			os.Exit(2)
		}
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n\n"+

		"\tMax FASTA Upload Size : %d MB\n"+
		"\tMax FASTQ Upload Size : %d MB\n"+
		"\tMax Variant CSV Upload Size : %d MB\n\n"+

		"\tSession TTL : %d minutes\n"+
		"\tSession Sweep Interval : %d minutes\n\n"+

		"Running on Port : %s\n",

		cfg.Debug,
		cfg.Api.MaxFastaSizeMb,
		cfg.Api.MaxFastqSizeMb,
		cfg.Api.MaxVariantCsvSizeMb,
		cfg.Session.TtlMinutes,
		cfg.Session.SweepIntervalMinutes,
		cfg.Api.Port)
	// --

	// Instantiate Server
	e := echo.New()

	// Service Singletons
	repo := memory.NewRepository()
	janitor.NewJanitorService(repo, &cfg)

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom SeqLab" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.SeqLabContext{
				Context:    c,
				Config:     &cfg,
				Repository: repo,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		fmt.Printf("[%s] - Root hit!\n", time.Now())
		return c.JSON(http.StatusOK, serviceInfoConst.SERVICE_WELCOME)
	})

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Sequences
	e.GET("/sequences/overview", sequencesMvc.GetSequencesOverview)

	e.POST("/sequences/ingestion/run", sequencesMvc.SequencesIngest,
		// middleware
		gam.ValidateOptionalFormatAttribute)
	e.GET("/sequences", sequencesMvc.GetAllSequences)
	e.GET("/sequences/:id", sequencesMvc.SequenceGetById)
	e.GET("/sequences/:id/export/fasta", sequencesMvc.SequenceExportFasta)

	e.GET("/sequences/:id/motif/search", sequencesMvc.SequencesMotifSearch,
		// middleware
		gam.MandateMotifAttribute)
	e.GET("/sequences/:id/gc/windows", sequencesMvc.SequencesGCWindows,
		// middleware
		gam.MandateWindowSizeAttribute)

	// -- Variants
	e.POST("/variants/ingestion/run", variantsMvc.VariantsIngest)
	e.GET("/variants/sets", variantsMvc.GetAllVariantSets)
	e.GET("/variants/sets/:id", variantsMvc.VariantSetGetById)

	e.GET("/variants/comparison/run", variantsMvc.VariantsCompare)
	e.GET("/variants/comparison/:id", variantsMvc.ComparisonGetById)
	e.GET("/variants/comparison/:id/export", variantsMvc.ComparisonExportCsv)

	// -- Generic CSV export
	e.POST("/export/csv", exportMvc.ExportCsv)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
