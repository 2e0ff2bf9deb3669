package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// Options configures continuous profiling. Tags are attached to every
// uploaded profile, so keep them low-cardinality (service, environment,
// instance).
type Options struct {
	Endpoint       string
	AppName        string
	SampleTypes    []string
	UploadInterval time.Duration
	Tags           map[string]string
}

var allProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockCount,
	pyroscope.ProfileBlockDuration,
}

var profileTypesByName = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// Start begins continuous profiling and returns a stop function.
func Start(opts Options) (func(), error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required")
	}

	appName := strings.TrimSpace(opts.AppName)
	if appName == "" {
		appName = "educhain-web"
	}

	interval := opts.UploadInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	profileTypes, err := resolveProfileTypes(opts.SampleTypes)
	if err != nil {
		return nil, err
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		UploadRate:      interval,
		ProfileTypes:    profileTypes,
		Tags:            opts.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling started",
		zap.String("application_name", appName),
		zap.String("endpoint", endpoint),
		zap.Strings("sample_types", opts.SampleTypes),
		zap.Duration("upload_interval", interval),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

// resolveProfileTypes maps the configured sample type names onto pyroscope
// profile types; an empty list means everything.
func resolveProfileTypes(names []string) ([]pyroscope.ProfileType, error) {
	if len(names) == 0 {
		return allProfileTypes, nil
	}

	types := make([]pyroscope.ProfileType, 0, len(allProfileTypes))
	seen := make(map[pyroscope.ProfileType]struct{}, len(allProfileTypes))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		mapped, ok := profileTypesByName[key]
		if !ok {
			return nil, fmt.Errorf("unknown profiling sample type %q", key)
		}
		for _, t := range mapped {
			if _, dup := seen[t]; dup {
				continue
			}
			types = append(types, t)
			seen[t] = struct{}{}
		}
	}

	if len(types) == 0 {
		return allProfileTypes, nil
	}
	return types, nil
}
