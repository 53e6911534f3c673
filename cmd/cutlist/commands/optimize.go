package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cutlistpro/cutlist/internal/engine"
	"github.com/cutlistpro/cutlist/internal/export"
	"github.com/cutlistpro/cutlist/internal/importer"
	"github.com/cutlistpro/cutlist/internal/model"
	"github.com/cutlistpro/cutlist/internal/project"
)

var (
	optInput       string
	optProject     string
	optAlgorithm   string
	optSheetWidth  float64
	optSheetHeight float64
	optKerf        float64
	optThickness   float64
	optMaterial    string
	optPDF         string
	optXLSX        string
	optDXF         string
	optLabels      string
	optJSON        string
	optSave        string
)

var OptimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Compute a cutting layout for a part list",
	Long: `Compute a cutting layout for a part list.

Parts are read from a CSV/XLSX file (--input) or a saved project
(--project). The resulting layout is printed as a table and can be
exported to PDF, XLSX, DXF, QR labels, or raw JSON.`,
	RunE: runOptimize,
}

func init() {
	defaults := model.DefaultSettings()

	OptimizeCmd.Flags().StringVarP(&optInput, "input", "i", "", "Part list file (.csv, .xlsx)")
	OptimizeCmd.Flags().StringVarP(&optProject, "project", "p", "", "Saved project file")
	OptimizeCmd.Flags().StringVarP(&optAlgorithm, "algorithm", "a", string(defaults.Algorithm), "Packing algorithm")
	OptimizeCmd.Flags().Float64Var(&optSheetWidth, "sheet-width", defaults.SheetWidth, "Sheet width in mm")
	OptimizeCmd.Flags().Float64Var(&optSheetHeight, "sheet-height", defaults.SheetHeight, "Sheet height in mm")
	OptimizeCmd.Flags().Float64Var(&optKerf, "kerf", defaults.KerfWidth, "Saw kerf width in mm")
	OptimizeCmd.Flags().Float64Var(&optThickness, "thickness", defaults.Thickness, "Material thickness in mm")
	OptimizeCmd.Flags().StringVar(&optMaterial, "material", "", "Material reference")
	OptimizeCmd.Flags().StringVar(&optPDF, "pdf", "", "Write layout diagrams to a PDF file")
	OptimizeCmd.Flags().StringVar(&optXLSX, "xlsx", "", "Write the report workbook to an XLSX file")
	OptimizeCmd.Flags().StringVar(&optDXF, "dxf", "", "Write the layout drawing to a DXF file")
	OptimizeCmd.Flags().StringVar(&optLabels, "labels", "", "Write QR piece labels to a PDF file")
	OptimizeCmd.Flags().StringVar(&optJSON, "json", "", "Write the raw report to a JSON file (- for stdout)")
	OptimizeCmd.Flags().StringVar(&optSave, "save", "", "Save parts, settings, and report as a project file")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	parts, settings, err := loadParts(optInput, optProject)
	if err != nil {
		return err
	}

	algorithm, err := model.ParseAlgorithm(optAlgorithm)
	if err != nil {
		return err
	}

	// CLI flags override project settings
	if cmd.Flags().Changed("sheet-width") || optProject == "" {
		settings.SheetWidth = optSheetWidth
	}
	if cmd.Flags().Changed("sheet-height") || optProject == "" {
		settings.SheetHeight = optSheetHeight
	}
	if cmd.Flags().Changed("kerf") || optProject == "" {
		settings.KerfWidth = optKerf
	}
	if cmd.Flags().Changed("thickness") || optProject == "" {
		settings.Thickness = optThickness
	}
	settings.Algorithm = algorithm

	opt := engine.New(settings.KerfWidth)
	report, err := opt.Optimize(parts, settings.SheetWidth, settings.SheetHeight, optMaterial, settings.Thickness, algorithm)
	if err != nil {
		return err
	}

	printReport(cmd, report)

	if optPDF != "" {
		if err := export.ExportPDF(optPDF, report, settings); err != nil {
			return fmt.Errorf("PDF export failed: %w", err)
		}
		cmd.Printf("Wrote %s\n", optPDF)
	}
	if optXLSX != "" {
		if err := export.ExportXLSX(optXLSX, report, parts); err != nil {
			return fmt.Errorf("XLSX export failed: %w", err)
		}
		cmd.Printf("Wrote %s\n", optXLSX)
	}
	if optDXF != "" {
		if err := export.ExportDXF(optDXF, report); err != nil {
			return fmt.Errorf("DXF export failed: %w", err)
		}
		cmd.Printf("Wrote %s\n", optDXF)
	}
	if optLabels != "" {
		if err := export.ExportLabels(optLabels, report); err != nil {
			return fmt.Errorf("label export failed: %w", err)
		}
		cmd.Printf("Wrote %s\n", optLabels)
	}
	if optJSON != "" {
		if err := writeReportJSON(optJSON, report); err != nil {
			return fmt.Errorf("JSON export failed: %w", err)
		}
		if optJSON != "-" {
			cmd.Printf("Wrote %s\n", optJSON)
		}
	}
	if optSave != "" {
		p := model.Project{
			Name:     strings.TrimSuffix(optSave, project.FileExtension),
			Parts:    parts,
			Settings: settings,
			Result:   report,
		}
		if err := project.Save(optSave, p); err != nil {
			return fmt.Errorf("project save failed: %w", err)
		}
		cmd.Printf("Saved %s\n", optSave)
	}

	return nil
}

// loadParts reads the part list from either an input file or a project.
// Exactly one source must be given. Returns the parts together with the
// settings to start from.
func loadParts(inputPath, projectPath string) ([]model.Part, model.CutSettings, error) {
	switch {
	case inputPath != "" && projectPath != "":
		return nil, model.CutSettings{}, fmt.Errorf("use either --input or --project, not both")

	case inputPath != "":
		result := importer.ImportFile(inputPath)
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		if len(result.Errors) > 0 {
			return nil, model.CutSettings{}, fmt.Errorf("import failed: %s", strings.Join(result.Errors, "; "))
		}
		if len(result.Parts) == 0 {
			return nil, model.CutSettings{}, fmt.Errorf("no parts found in %s", inputPath)
		}
		return result.Parts, model.DefaultSettings(), nil

	case projectPath != "":
		p, err := project.Load(projectPath)
		if err != nil {
			return nil, model.CutSettings{}, err
		}
		if len(p.Parts) == 0 {
			return nil, model.CutSettings{}, fmt.Errorf("project %s has no parts", projectPath)
		}
		return p.Parts, p.Settings, nil

	default:
		return nil, model.CutSettings{}, fmt.Errorf("a part list is required: use --input or --project")
	}
}

// printReport writes a human-readable layout summary to the command output.
func printReport(cmd *cobra.Command, report *model.Report) {
	cmd.Printf("Algorithm: %s\n", report.Summary.AlgorithmUsed)
	cmd.Printf("Sheets:    %d\n", report.Summary.TotalSheets)
	cmd.Printf("Pieces:    %d\n", report.PieceCount())
	cmd.Printf("Utilization: %.1f%%  Waste: %.1f%%\n\n", report.Summary.OverallUtilizationPercent, report.Summary.OverallWastePercent)

	for _, sheet := range report.Sheets {
		cmd.Printf("Sheet %d (%.0f x %.0f mm): %d pieces, %.1f%% used\n",
			sheet.ID, sheet.SheetWidth, sheet.SheetHeight, len(sheet.Pieces), sheet.UtilizationPercent)
		for _, p := range sheet.Pieces {
			rotated := ""
			if p.Rotated {
				rotated = "  (rotated)"
			}
			cmd.Printf("  %-24s %7.1f x %-7.1f @ (%.1f, %.1f)%s\n",
				p.Name, p.Width, p.Height, p.X, p.Y, rotated)
		}
	}
}

func writeReportJSON(path string, report *model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0644)
}
