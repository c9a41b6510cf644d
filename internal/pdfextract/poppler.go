package pdfextract

import (
	"context"
	"os/exec"
	"strings"
)

// popplerBackend wraps pdftotext. With layout=true the physical page layout
// is preserved, which keeps column alignment intact for table detection.
type popplerBackend struct {
	bin    string
	layout bool
	runner Runner
}

func newTextBackend(bin string, r Runner) *popplerBackend {
	return &popplerBackend{bin: bin, layout: false, runner: r}
}

func newLayoutBackend(bin string, r Runner) *popplerBackend {
	return &popplerBackend{bin: bin, layout: true, runner: r}
}

func (b *popplerBackend) Name() string {
	if b.layout {
		return MethodLayout
	}
	return MethodText
}

func (b *popplerBackend) Confidence() float64 {
	if b.layout {
		return 0.80
	}
	return 0.90
}

func (b *popplerBackend) Available() bool {
	_, err := exec.LookPath(b.bin)
	return err == nil
}

func (b *popplerBackend) Extract(ctx context.Context, path string) (Result, error) {
	args := []string{"-enc", "UTF-8", "-eol", "unix"}
	if b.layout {
		args = append(args, "-layout")
	}
	args = append(args, path, "-")

	out, errb, err := b.runner.Run(ctx, b.bin, args...)
	if err != nil {
		return Result{Method: b.Name(), Warnings: []string{string(errb)}}, err
	}
	text := string(out)
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")
	return Result{
		Text:       text,
		Pages:      pages,
		Method:     b.Name(),
		Confidence: b.Confidence(),
	}, nil
}
