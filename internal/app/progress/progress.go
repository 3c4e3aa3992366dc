// Package progress renders terminal progress bars for pipeline runs.
package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/pipeline"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

// StageBar follows one job through the pipeline stages
type StageBar struct {
	bar     *mpb.Bar
	enabled bool

	mu      sync.Mutex
	message string
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

// StageBar adds a bar with one step per pipeline stage
func (pm *Manager) StageBar(description string) *StageBar {
	if !pm.enabled || pm.container == nil {
		return &StageBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	sb := &StageBar{enabled: true}
	sb.bar = pm.container.AddBar(int64(len(pipeline.StageOrder)),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace),
			decor.Any(func(decor.Statistics) string { return " " + sb.text() }),
		),
	)
	return sb
}

func (sb *StageBar) text() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.message
}

// Observe has the signature of pipeline.ProgressObserver. A stage moves the
// bar to the steps completed before it; the final text fills it.
func (sb *StageBar) Observe(_ int64, stage pipeline.StageName, text string) {
	if !sb.enabled || sb.bar == nil {
		return
	}

	sb.mu.Lock()
	sb.message = text
	sb.mu.Unlock()

	step := stage.Step()
	if text == model.ProgressCompleted {
		step = len(pipeline.StageOrder) + 1
	}
	if step > 0 {
		sb.bar.SetCurrent(int64(step - 1))
	}
}

// Complete marks the bar finished whatever stage it reached
func (sb *StageBar) Complete() {
	if sb.enabled && sb.bar != nil {
		sb.bar.SetTotal(sb.bar.Current(), true)
	}
}

func (pm *Manager) Wait() {
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
	}
}

func (pm *Manager) Shutdown() {
	if pm.enabled && pm.container != nil {
		pm.container.Shutdown()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr) || IsTTY(os.Stdout)
}
