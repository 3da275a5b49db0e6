package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tayuki/school-calendar-app/internal/logger"
	"github.com/tayuki/school-calendar-app/internal/ocr"
	"github.com/tayuki/school-calendar-app/pkg/models"
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Extract text from a notice image or PDF",
	Long: `Run OCR on a photographed or scanned school notice and print the extracted
text. Supports JPEG, PNG and GIF images and PDFs up to 5 pages.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Print the text of a photographed notice
  schoolcal scan notice.jpg

  # Save the text of a scanned PDF to a file
  schoolcal scan notice.pdf -o notice.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scan")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalAwareContext(timeoutSecs, log)
	defer cancel()

	extractor, err := newExtractor(ctx, log)
	if err != nil {
		return err
	}

	text, err := extractor.ExtractText(ctx, doc)
	if err != nil {
		return handleExtractionError(err, log)
	}

	if text == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No text was detected in the document.")
		return nil
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		log.Info().Str("output_file", outputPath).Int("bytes", len(text)).Msg("extracted text written")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// readDocument loads an input file and derives its media kind from the
// file extension.
func readDocument(path string) (models.RawDocument, error) {
	kind, err := mediaKind(path)
	if err != nil {
		return models.RawDocument{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.RawDocument{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return models.RawDocument{}, fmt.Errorf("file is empty: %s", path)
	}

	return models.RawDocument{Data: data, Kind: kind}, nil
}

func mediaKind(path string) (models.MediaKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return models.MediaImage, nil
	case ".pdf":
		return models.MediaPDF, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (expected jpg, jpeg, png, gif or pdf)", filepath.Ext(path))
	}
}

// signalAwareContext creates a timeout context that is also canceled on
// SIGINT/SIGTERM.
func signalAwareContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().Str("signal", sig.String()).Msg("received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func newExtractor(ctx context.Context, log zerolog.Logger) (ocr.Service, error) {
	hasCredentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" || os.Getenv("GOOGLE_CREDENTIALS") != ""
	if !hasCredentials {
		log.Error().Msg("Google Cloud credentials not configured")
		return nil, fmt.Errorf("Google Cloud credentials not configured. Set GOOGLE_APPLICATION_CREDENTIALS " +
			"to a service account JSON file path, or GOOGLE_CREDENTIALS to inline JSON")
	}

	service, err := ocr.NewVisionService(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to create OCR service")
		return nil, fmt.Errorf("creating OCR service: %w", err)
	}
	return service, nil
}

// handleExtractionError maps extraction failures to user-facing messages.
func handleExtractionError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("text extraction failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("text extraction timed out. Try increasing --timeout or a smaller file")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("text extraction was canceled")
	case errors.Is(err, ocr.ErrPageLimitExceeded):
		return fmt.Errorf("the PDF has more than %d pages. Split the document and retry", ocr.MaxPDFPages)
	case errors.Is(err, ocr.ErrInvalidPDF):
		return fmt.Errorf("invalid or corrupted PDF file. Please check the file integrity")
	case errors.Is(err, ocr.ErrMissingCredentials):
		return fmt.Errorf("Google Cloud credentials validation failed. Verify GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS")
	default:
		return fmt.Errorf("text extraction failed: %w", err)
	}
}
