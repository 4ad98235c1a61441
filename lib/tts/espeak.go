package tts

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// EspeakEngine локальный синтез через espeak-ng
type EspeakEngine struct {
	binary   string
	voice    string
	rate     int
	tempRoot string
	run      runFunc
}

func NewEspeakEngine(binary, voice string, rate int) *EspeakEngine {
	if binary == "" {
		binary = "espeak-ng"
	}
	if rate <= 0 {
		rate = 170
	}
	return &EspeakEngine{
		binary: binary,
		voice:  voice,
		rate:   rate,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

func (e *EspeakEngine) Name() string {
	return "espeak"
}

func (e *EspeakEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	tempDir, err := os.MkdirTemp(e.tempRoot, "tts_*")
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания временной директории")
	}
	defer os.RemoveAll(tempDir)

	outputFile := filepath.Join(tempDir, "question.wav")
	args := []string{"-s", strconv.Itoa(e.rate), "-a", "100", "-w", outputFile}
	if e.voice != "" {
		args = append(args, "-v", e.voice)
	}
	// "--" чтобы текст, начинающийся с "-", не принимался за флаг
	args = append(args, "--", text)
	output, err := e.run(ctx, e.binary, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка выполнения %s: %s", e.binary, string(output))
	}
	audio, err := os.ReadFile(outputFile)
	if err != nil {
		return nil, errors.Wrap(err, "файл с речью не создан")
	}
	return audio, nil
}
