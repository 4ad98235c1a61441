package audionormalize

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Normalizer приводит записанный в браузере звук (webm/ogg) к wav 16 кГц моно
type Normalizer struct {
	ffmpegPath string
	tempRoot   string
	run        runFunc
}

func New(ffmpegPath string) *Normalizer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Normalizer{
		ffmpegPath: ffmpegPath,
		run:        execRun,
	}
}

// WithWavFile конвертирует аудио и передает путь к wav в fn.
// Временная директория удаляется при любом исходе.
func (n *Normalizer) WithWavFile(ctx context.Context, audio []byte, fn func(wavPath string) error) error {
	if len(audio) == 0 {
		return errors.New("пустой аудиофайл")
	}
	tempDir, err := os.MkdirTemp(n.tempRoot, "answer_audio_*")
	if err != nil {
		return errors.Wrap(err, "ошибка создания временной директории")
	}
	defer os.RemoveAll(tempDir)

	inputFile := filepath.Join(tempDir, "input_audio")
	outputFile := filepath.Join(tempDir, "output_audio.wav")
	if err = os.WriteFile(inputFile, audio, 0o600); err != nil {
		return errors.Wrap(err, "ошибка сохранения исходного аудио")
	}

	output, err := n.run(ctx, n.ffmpegPath,
		"-y",
		"-i", inputFile,
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		outputFile,
	)
	if err != nil {
		log.WithError(err).WithField("ffmpeg_output", string(output)).Error("ошибка выполнения ffmpeg")
		return errors.Wrapf(err, "ошибка конвертации аудио: %s", string(output))
	}
	if _, err = os.Stat(outputFile); err != nil {
		return errors.Wrap(err, "выходной файл не создан")
	}
	return fn(outputFile)
}

// ToWav конвертирует аудио и возвращает содержимое wav
func (n *Normalizer) ToWav(ctx context.Context, audio []byte) (wav []byte, err error) {
	err = n.WithWavFile(ctx, audio, func(wavPath string) error {
		wav, err = os.ReadFile(wavPath)
		if err != nil {
			return errors.Wrap(err, "ошибка чтения сконвертированного аудио")
		}
		return nil
	})
	return wav, err
}
