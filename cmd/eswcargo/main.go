package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/config"
	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/exporter"
	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/importer"
	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/store"
)

var (
	workbook    = flag.String("workbook", "", "ruta del Excel de origen (sobrescribe config.toml)")
	outDir      = flag.String("out", "", "directorio de salida para los seeds JSON (sobrescribe config.toml)")
	days        = flag.Int("days", -1, "ventana de recencia en días; 0 procesa todo, negativo usa config.toml")
	syncClients = flag.String("sync-clients", "", "JSON de clientes del sistema para completar celdas vacías de CLIENTES")
	devMode     = flag.Bool("dev", false, "log de desarrollo")
)

func main() {
	flag.Parse()

	// .env first, same load order the sync scripts always used.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("no se pudo leer config.toml, usando valores por defecto: %v", err)
		cfg = config.DefaultConfig()
	}
	if *workbook != "" {
		cfg.Source.WorkbookPath = *workbook
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *days >= 0 {
		cfg.Sync.RecencyDays = *days
	}
	if *devMode {
		cfg.Log.Dev = true
	}

	logger, err := newLogger(cfg.Log.Dev)
	if err != nil {
		log.Fatalf("no se pudo inicializar el logger: %v", err)
	}
	defer logger.Sync()

	fmt.Println("==========================================")
	fmt.Println("  Eswcargo - Sincronización VENTAS COMPRAS")
	fmt.Println("==========================================")
	if cfg.Sync.RecencyDays > 0 {
		fmt.Printf("⏱️  Filtrando datos de los últimos %d días...\n", cfg.Sync.RecencyDays)
	}
	fmt.Printf("🚀 Iniciando extracción consolidada desde: %s\n", cfg.Source.WorkbookPath)

	var audit *store.Store
	if cfg.Audit.Enabled {
		audit, err = store.New(cfg.Audit.DBPath)
		if err != nil {
			logger.Warn("registro de auditoría deshabilitado", zap.Error(err))
			audit = nil
		} else {
			defer audit.Close()
		}
	}

	runID := uuid.New().String()
	if audit != nil {
		if err := audit.CreateRun(runID, cfg.Source.WorkbookPath, cfg.Sync.RecencyDays); err != nil {
			logger.Warn("no se pudo registrar el inicio de la corrida", zap.Error(err))
		}
	}

	coordinator := importer.NewCoordinator(logger)
	res, err := coordinator.Run(importer.Options{
		RunID:        runID,
		WorkbookPath: cfg.Source.WorkbookPath,
		RecencyDays:  cfg.Sync.RecencyDays,
		Now:          time.Now(),
	})
	if err != nil {
		fail(logger, audit, runID, err)
	}

	writer := exporter.NewWriter(cfg.Output.Dir, logger)
	if err := writer.WriteAll(res); err != nil {
		fail(logger, audit, runID, err)
	}

	if *syncClients != "" {
		if err := runClientSync(logger, cfg.Source.WorkbookPath, *syncClients); err != nil {
			fail(logger, audit, runID, err)
		}
	}

	if audit != nil {
		if err := audit.CompleteRun(runID, res); err != nil {
			logger.Warn("no se pudo cerrar el registro de la corrida", zap.Error(err))
		}
	}

	fmt.Printf("\n✅ Extracción completa en %.2f segundos.\n", res.Report.Duration.Seconds())
	fmt.Printf("📁 Archivos generados en %s\n", cfg.Output.Dir)
	fmt.Printf("   clientes=%d productos=%d pedidos=%d envíos=%d proveedores=%d\n",
		len(res.Clients), len(res.Products), len(res.Orders), len(res.Shipments), len(res.Suppliers))
	if res.Report.DefaultedFields > 0 || res.Report.SkippedRows > 0 {
		fmt.Printf("   filas salteadas=%d campos con valor por defecto=%d\n",
			res.Report.SkippedRows, res.Report.DefaultedFields)
	}
}

// runClientSync patches empty CLIENTES cells from a system-exported client
// collection and saves the workbook in place.
func runClientSync(logger *zap.Logger, workbookPath, clientsPath string) error {
	clients, err := exporter.LoadClients(clientsPath)
	if err != nil {
		return err
	}
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return fmt.Errorf("abrir workbook para sincronizar: %w", err)
	}
	defer f.Close()

	// Sheet casing drifts across snapshots, same as on the read side.
	sheet := importer.SheetClients
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(name), importer.SheetClients) {
			sheet = name
			break
		}
	}

	sync := exporter.NewClientSync(logger)
	updated, err := sync.Patch(f, sheet, clients)
	if err != nil {
		return err
	}
	if updated == 0 {
		return nil
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("guardar workbook sincronizado: %w", err)
	}
	fmt.Printf("📤 Sincronización inversa: %d celdas completadas en CLIENTES\n", updated)
	return nil
}

func fail(logger *zap.Logger, audit *store.Store, runID string, err error) {
	if audit != nil {
		_ = audit.FailRun(runID, err.Error())
	}
	var sheetErr *importer.SheetNotFoundError
	switch {
	case errors.Is(err, importer.ErrWorkbookMissing):
		fmt.Printf("❌ Error: no se encontró el archivo de origen: %v\n", err)
	case errors.As(err, &sheetErr):
		fmt.Printf("❌ Error: falta la hoja requerida %q en el workbook\n", sheetErr.Sheet)
	default:
		fmt.Printf("❌ Error: %v\n", err)
	}
	logger.Error("extracción abortada", zap.Error(err))
	logger.Sync()
	os.Exit(1)
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
