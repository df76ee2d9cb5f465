package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cme-be/internal/dto"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/unitofwork"
	"cme-be/pkg/extraction"
	"cme-be/pkg/identity"
	"cme-be/pkg/ingest"
	"cme-be/pkg/transcript"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

// transcriptFile is the document written next to every input.
type transcriptFile struct {
	Transcripts []*dto.SessionResponse `json:"transcripts"`
}

var manualCmd = &cobra.Command{
	Use:     "manual <files...>",
	Aliases: []string{"m"},
	Short:   "Extract the communication model of local transcript files",
	Long: `Reads every given transcript, extracts its interactions and writes
<file>.json next to it. Persons are kept in memory for the duration of the
run, so a person appearing in several files resolves to the same id.

Examples:
  cme manual 19001.xml 19002.xml
  cme manual --debug 19001.json      # writes 19001.cme.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.WarnLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		log := logger.NewConsoleLogger(level)
		defer log.Sync()

		uow := unitofwork.NewMemoryRepositoryFactory()
		mdbs := uow.NewUnitOfWork(cmd.Context()).MdbRepository()
		resolver := identity.NewResolver(mdbs, identity.NewKeyedMutex(), log)
		reader := ingest.NewReader(resolver, mdbs, log)
		extractor := extraction.NewExtractor(resolver, log, extraction.WithDebugObjects(addDebug))

		failed := 0
		for _, file := range args {
			out, summary, err := processFile(cmd.Context(), reader, extractor, file)
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("✗"), file, err)
				continue
			}
			fmt.Printf("%s %s -> %s %s\n",
				color.GreenString("✓"),
				file,
				out,
				color.New(color.Faint).Sprintf("(%d interactions, %d factions, %d speakers)",
					summary.Interactions, summary.Factions, summary.Speakers),
			)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	manualCmd.Flags().BoolVar(&addDebug, "debug", false, "attach the source text to every interaction")
}

func processFile(ctx context.Context, reader *ingest.Reader, extractor *extraction.Extractor, file string) (string, dto.EvaluationResult, error) {
	var summary dto.EvaluationResult

	res, err := reader.ReadFile(ctx, file)
	if err != nil {
		return "", summary, fmt.Errorf("read: %w", err)
	}

	interactions, err := extractor.ExtractCommunicationModel(ctx, res.Candidates)
	if err != nil {
		return "", summary, fmt.Errorf("extract: %w", err)
	}

	stored := transcript.Project(transcript.Assemble(res.Metadata, interactions))
	summary = dto.EvaluationResult{
		SessionId:    stored.SessionId,
		Interactions: len(stored.Interactions),
		Factions:     len(stored.Factions),
		Speakers:     len(stored.Speakers),
	}

	out := outputPath(file)
	if err := writeTranscript(out, transcriptFile{Transcripts: []*dto.SessionResponse{dto.NewSessionResponse(stored)}}); err != nil {
		return "", summary, fmt.Errorf("write: %w", err)
	}
	return out, summary, nil
}

// outputPath swaps the extension for .json; JSON inputs get .cme.json so the
// input is never overwritten.
func outputPath(file string) string {
	ext := filepath.Ext(file)
	base := strings.TrimSuffix(file, ext)
	if strings.EqualFold(ext, ".json") {
		return base + ".cme.json"
	}
	return base + ".json"
}

func writeTranscript(path string, doc transcriptFile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
