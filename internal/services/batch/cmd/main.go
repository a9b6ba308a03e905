package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/agrisense/cwsi-eta/internal/cwsi"
	"github.com/agrisense/cwsi-eta/internal/services/batch"
	"github.com/agrisense/cwsi-eta/internal/tabular"
)

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func main() {
	_ = godotenv.Load(".env")

	input := envStr("INPUT_CSV", "")
	output := envStr("OUTPUT_CSV", "")
	if input == "" || output == "" {
		log.Fatal("batch: INPUT_CSV and OUTPUT_CSV are required")
	}

	defaults := cwsi.DefaultParams()
	svc := &batch.Service{
		InputPath:  input,
		OutputPath: output,
		Runner: tabular.Runner{
			Params: cwsi.Params{
				NDVIMax:        envFloat("NDVI_MAX", defaults.NDVIMax),
				NDVIMin:        envFloat("NDVI_MIN", defaults.NDVIMin),
				VegEmissivity:  envFloat("VEG_EMISSIVITY", defaults.VegEmissivity),
				SoilEmissivity: envFloat("SOIL_EMISSIVITY", defaults.SoilEmissivity),
				TBackground:    envFloat("T_BACKGROUND", defaults.TBackground),
			},
			Columns: tabular.Columns{
				Nir:     envStr("COL_NIR", ""),
				Red:     envStr("COL_RED", ""),
				TSensor: envStr("COL_T_SENSOR", ""),
				RH:      envStr("COL_RH", ""),
				Ta:      envStr("COL_AIR_TEMP", ""),
				ETc:     envStr("COL_ETC", ""),
			},
			Policy: tabular.RowPolicy(envStr("ROW_POLICY", string(tabular.FailOnRowError))),
		},
	}

	if err := svc.Run(); err != nil {
		log.Fatalf("batch: %v", err)
	}
}
