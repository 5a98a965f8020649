package models

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Debug   bool   `envconfig:"SEQLAB_DEBUG" yaml:"debug"`
	SemVer  string `envconfig:"SEQLAB_SEMVER" yaml:"semVer"`
	Contact string `envconfig:"SEQLAB_SERVICE_CONTACT" yaml:"contact"`

	Api struct {
		Port string `envconfig:"SEQLAB_API_INTERNAL_PORT" yaml:"port"`
		Url  string `envconfig:"SEQLAB_API_URL" yaml:"url"`

		// upload caps, in megabytes, applied by the handlers
		// before any text reaches a parser
		MaxFastaSizeMb      int `envconfig:"SEQLAB_API_MAX_FASTA_MB" default:"5" yaml:"maxFastaSizeMb"`
		MaxFastqSizeMb      int `envconfig:"SEQLAB_API_MAX_FASTQ_MB" default:"10" yaml:"maxFastqSizeMb"`
		MaxVariantCsvSizeMb int `envconfig:"SEQLAB_API_MAX_VARIANT_CSV_MB" default:"5" yaml:"maxVariantCsvSizeMb"`
	} `yaml:"api"`

	Session struct {
		TtlMinutes           int `envconfig:"SEQLAB_SESSION_TTL_MINUTES" default:"60" yaml:"ttlMinutes"`
		SweepIntervalMinutes int `envconfig:"SEQLAB_SESSION_SWEEP_INTERVAL_MINUTES" default:"10" yaml:"sweepIntervalMinutes"`
	} `yaml:"session"`
}

// LoadFromYamlFile overlays settings from a yaml configuration
// file on top of whatever envconfig already gathered
func (c *Config) LoadFromYamlFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	return decoder.Decode(c)
}
