package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qubic/go-mempool-matrix/business/domain/banner"
	"github.com/qubic/go-mempool-matrix/business/domain/feebar"
	"github.com/qubic/go-mempool-matrix/business/domain/mempool"
	"github.com/qubic/go-mempool-matrix/external/matrix"
	"github.com/qubic/go-mempool-matrix/external/mempoolapi"
	"github.com/qubic/go-mempool-matrix/infrastructure/api"
	"github.com/qubic/go-mempool-matrix/infrastructure/dotenv"
	"github.com/qubic/go-mempool-matrix/infrastructure/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const prefix = "MEMPOOL"

func main() {
	if err := run(); err != nil {
		log.Fatalf("main: exited with error: %s", err.Error())
	}
}

func run() error {
	var cfg struct {
		NodeAddress string `conf:"help:address of the self-hosted mempool node like umbrel.local:3006"`
		EnvFile     string `conf:"default:.env"`
		LogFile     string `conf:"default:mempool-matrix.log"`
		Client      struct {
			Timeout       time.Duration `conf:"default:10s"`
			RetryAttempts int           `conf:"default:3"`
			RetryDelay    time.Duration `conf:"default:15s"`
			CacheTTL      time.Duration `conf:"default:5s"`
			MaxBlocks     int           `conf:"default:8"`
		}
		Display struct {
			Driver         string        `conf:"default:terminal,help:terminal or headless"`
			PollInterval   time.Duration `conf:"default:15s"`
			Brightness     float64       `conf:"default:0.1"` // too bright for the eye above that
			ScrollStep     time.Duration `conf:"default:50ms"`
			MempoolColumns int           `conf:"default:8"`
			Gap            int           `conf:"default:1"`
			ColumnOrder    string        `conf:"default:center-out,help:center-out or edge-in"`
			SegmentOrder   string        `conf:"default:descending,help:ascending or descending"`
			PadSide        string        `conf:"default:leading,help:leading or trailing"`
			Resample       string        `conf:"default:interpolate,help:interpolate or midpoint"`
			GreenFee       float64       `conf:"default:10"`
			YellowFee      float64       `conf:"default:20"`
			RedFee         float64       `conf:"default:60"`
		}
		Server struct {
			ListenAddr       string `conf:"default:127.0.0.1:8000"`
			MetricsNamespace string `conf:"default:mempool_matrix"`
		}
	}

	rotation, args, err := parseRotation(os.Args[1:])
	if err != nil {
		fmt.Printf("Usage: %s [options] <rotation>\n", os.Args[0])
		return errors.Wrap(err, "invalid rotation")
	}

	if err := conf.Parse(args, prefix, &cfg); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, err := conf.Usage(prefix, &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return nil
		case errors.Is(err, conf.ErrVersionWanted):
			version, err := conf.VersionString(prefix, &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config version")
			}
			fmt.Println(version)
			return nil
		}
		return errors.Wrap(err, "parsing config")
	}

	// the terminal belongs to the display, so we log into a file
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.DateTime)
	config.OutputPaths = []string{cfg.LogFile}
	config.ErrorOutputPaths = []string{cfg.LogFile}
	logger, err := config.Build()
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer logger.Sync()
	sLogger := logger.Sugar()

	out, err := conf.String(&cfg)
	if err != nil {
		return errors.Wrap(err, "generating config for output")
	}
	sLogger.Infof("main: Config :\n%v\n", out)

	ramp := feebar.Ramp{Green: cfg.Display.GreenFee, Yellow: cfg.Display.YellowFee, Red: cfg.Display.RedFee}
	if err := ramp.Validate(); err != nil {
		return err
	}
	resample, err := feebar.ParseResamplePolicy(cfg.Display.Resample)
	if err != nil {
		return err
	}
	segments, err := feebar.ParseSegmentPolicy(cfg.Display.SegmentOrder, cfg.Display.PadSide)
	if err != nil {
		return err
	}
	order, err := mempool.ParseColumnOrder(cfg.Display.ColumnOrder)
	if err != nil {
		return err
	}
	layout := mempool.Layout{MempoolColumns: cfg.Display.MempoolColumns, Gap: cfg.Display.Gap, Order: order}
	if err := layout.Validate(); err != nil {
		return err
	}

	// ask before the display takes over the terminal
	resolver := dotenv.NewResolver(cfg.EnvFile, os.Stdin, os.Stdout, sLogger)
	nodeAddress, err := resolver.NodeAddress(cfg.NodeAddress)
	if err != nil {
		return errors.Wrap(err, "resolving node address")
	}

	client, err := mempoolapi.NewClient(mempoolapi.Config{
		NodeAddress: nodeAddress,
		Timeout:     cfg.Client.Timeout,
		Attempts:    cfg.Client.RetryAttempts,
		RetryDelay:  cfg.Client.RetryDelay,
		MaxBlocks:   cfg.Client.MaxBlocks,
		CacheTTL:    cfg.Client.CacheTTL,
	}, sLogger)
	if err != nil {
		return errors.Wrap(err, "creating mempool client")
	}
	sLogger.Infow("Using mempool node.", "url", client.BaseURL())

	device, err := newDevice(cfg.Display.Driver)
	if err != nil {
		return errors.Wrap(err, "creating display")
	}
	defer func() {
		device.Clear()
		if err := device.Show(); err != nil {
			sLogger.Warnw("Error clearing display.", "error", err)
		}
		if err := device.Close(); err != nil {
			sLogger.Warnw("Error closing display.", "error", err)
		}
	}()

	if err := device.SetRotation(rotation); err != nil {
		return errors.Wrap(err, "rotating display")
	}
	device.SetBrightness(cfg.Display.Brightness)
	width, height := device.Shape()
	sLogger.Infow("Display ready.", "driver", cfg.Display.Driver, "width", width, "height", height, "rotation", rotation)

	mapper := feebar.Mapper{Height: height, Ramp: ramp, Resample: resample, Segments: segments}
	m := metrics.NewDisplayMetrics(cfg.Server.MetricsNamespace)
	proc := mempool.NewProcessor(client, device, banner.NewScroller(device, cfg.Display.ScrollStep), mapper, layout,
		cfg.Display.PollInterval, m, sLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer stop() // quitting the display stops everything
		return proc.Start(ctx)
	})

	if cfg.Server.ListenAddr != "" {
		handler := api.NewHandler(proc, sLogger)
		mux := http.NewServeMux()
		mux.HandleFunc("/health", handler.GetHealth)
		mux.HandleFunc("/v1/status", handler.GetStatus)
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: cfg.Server.ListenAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			sLogger.Infow("Starting server.", "addr", cfg.Server.ListenAddr)
			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrap(err, "serving http")
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	sLogger.Infow("Shutting down.")
	return err
}

// parseRotation takes the optional rotation in degrees off the end of args. Flags are
// left for conf. A last value following a flag without "=" belongs to that flag.
func parseRotation(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, args, nil
	}
	last := args[len(args)-1]
	if isFlag(last) {
		return 0, args, nil
	}
	if len(args) > 1 {
		if prev := args[len(args)-2]; isFlag(prev) && !strings.Contains(prev, "=") {
			return 0, args, nil
		}
	}

	degrees, err := strconv.Atoi(last)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "parsing rotation [%s]", last)
	}
	rotation, err := matrix.NormalizeRotation(degrees)
	if err != nil {
		return 0, nil, err
	}
	return rotation, args[:len(args)-1], nil
}

// isFlag reports whether arg is an option. Negative numbers are values.
func isFlag(arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	_, err := strconv.Atoi(arg)
	return err != nil
}

func newDevice(driver string) (matrix.Device, error) {
	switch driver {
	case "terminal":
		return matrix.NewTerminal(matrix.PanelWidth, matrix.PanelHeight)
	case "headless":
		return matrix.NewFramebuffer(matrix.PanelWidth, matrix.PanelHeight), nil
	default:
		return nil, errors.Errorf("unknown display driver [%s]", driver)
	}
}
