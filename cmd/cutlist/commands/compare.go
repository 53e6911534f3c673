package commands

import (
	"github.com/spf13/cobra"

	"github.com/cutlistpro/cutlist/internal/engine"
	"github.com/cutlistpro/cutlist/internal/model"
)

var (
	cmpInput       string
	cmpProject     string
	cmpSheetWidth  float64
	cmpSheetHeight float64
	cmpKerf        float64
	cmpThickness   float64
	cmpMaterial    string
)

var CompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all packing algorithms and rank them",
	Long: `Run every packing algorithm on the same part list and print a
side-by-side comparison of sheet count, utilization, and score.`,
	RunE: runCompare,
}

func init() {
	defaults := model.DefaultSettings()

	CompareCmd.Flags().StringVarP(&cmpInput, "input", "i", "", "Part list file (.csv, .xlsx)")
	CompareCmd.Flags().StringVarP(&cmpProject, "project", "p", "", "Saved project file")
	CompareCmd.Flags().Float64Var(&cmpSheetWidth, "sheet-width", defaults.SheetWidth, "Sheet width in mm")
	CompareCmd.Flags().Float64Var(&cmpSheetHeight, "sheet-height", defaults.SheetHeight, "Sheet height in mm")
	CompareCmd.Flags().Float64Var(&cmpKerf, "kerf", defaults.KerfWidth, "Saw kerf width in mm")
	CompareCmd.Flags().Float64Var(&cmpThickness, "thickness", defaults.Thickness, "Material thickness in mm")
	CompareCmd.Flags().StringVar(&cmpMaterial, "material", "", "Material reference")
}

func runCompare(cmd *cobra.Command, args []string) error {
	parts, settings, err := loadParts(cmpInput, cmpProject)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("sheet-width") || cmpProject == "" {
		settings.SheetWidth = cmpSheetWidth
	}
	if cmd.Flags().Changed("sheet-height") || cmpProject == "" {
		settings.SheetHeight = cmpSheetHeight
	}
	if cmd.Flags().Changed("kerf") || cmpProject == "" {
		settings.KerfWidth = cmpKerf
	}
	if cmd.Flags().Changed("thickness") || cmpProject == "" {
		settings.Thickness = cmpThickness
	}

	opt := engine.New(settings.KerfWidth)
	cmp, err := opt.CompareAlgorithms(parts, settings.SheetWidth, settings.SheetHeight, cmpMaterial, settings.Thickness)
	if err != nil {
		return err
	}

	cmd.Printf("%-22s %8s %13s %8s %7s\n", "Algorithm", "Sheets", "Utilization", "Waste", "Score")
	for _, r := range cmp.Results {
		marker := " "
		if r.Algorithm == cmp.Best {
			marker = "*"
		}
		cmd.Printf("%s %-20s %8d %12.1f%% %7.1f%% %7.1f\n",
			marker, r.Algorithm, r.Summary.TotalSheets,
			r.Summary.OverallUtilizationPercent, r.Summary.OverallWastePercent, r.Score)
	}
	cmd.Printf("\nBest: %s\n", cmp.Best)

	return nil
}
