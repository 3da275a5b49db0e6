package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/tayuki/school-calendar-app/internal/logger"
	"github.com/tayuki/school-calendar-app/pkg/models"
)

// annotator is the slice of the Vision client the service actually uses.
// *vision.ImageAnnotatorClient satisfies it; tests inject stubs.
type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	BatchAnnotateFiles(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateFilesResponse, error)
}

// VisionService implements Service using the Google Cloud Vision API.
type VisionService struct {
	client annotator
	log    zerolog.Logger
}

// NewVisionService creates a text extraction service with credentials from the
// environment. It expects either GOOGLE_APPLICATION_CREDENTIALS path or
// GOOGLE_CREDENTIALS JSON in env, falling back to application default credentials.
func NewVisionService(ctx context.Context) (*VisionService, error) {
	const op = "NewVisionService"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, wrapError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, wrapError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, wrapError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return NewVisionServiceWithClient(client), nil
}

// NewVisionServiceWithClient creates a service with an explicit client (for testing).
func NewVisionServiceWithClient(client annotator) *VisionService {
	return &VisionService{
		client: client,
		log:    logger.WithComponent("ocr"),
	}
}

// ExtractText extracts plain text from a document according to its media kind.
func (s *VisionService) ExtractText(ctx context.Context, doc models.RawDocument) (string, error) {
	const op = "ExtractText"

	if len(doc.Data) > MaxFileSizeBytes {
		return "", wrapError(op, ErrExtractionFailed, fmt.Sprintf("document size %d bytes exceeds limit", len(doc.Data)))
	}

	switch doc.Kind {
	case models.MediaImage:
		return s.extractImage(ctx, doc.Data)
	case models.MediaPDF:
		return s.extractPDF(ctx, doc.Data)
	default:
		return "", wrapError(op, ErrUnsupportedMedia, string(doc.Kind))
	}
}

func (s *VisionService) extractImage(ctx context.Context, data []byte) (string, error) {
	const op = "extractImage"

	// Best-effort grayscale pass; keeps the original bytes on any failure.
	data = Preprocess(data)

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := s.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", wrapError(op, ErrExtractionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return "", wrapError(op, ErrExtractionFailed, "no response from Vision API")
	}

	imageResp := resp.Responses[0]
	if imageResp.Error != nil {
		return "", wrapError(op, ErrExtractionFailed, fmt.Sprintf("Vision API error: %s", imageResp.Error.Message))
	}

	if len(imageResp.TextAnnotations) == 0 {
		s.log.Warn().Msg("no text detected in image")
		return "", nil
	}

	// The first annotation spans the whole image.
	text := imageResp.TextAnnotations[0].Description
	s.log.Info().Int("text_length", len(text)).Msg("image text extraction completed")
	return text, nil
}

func (s *VisionService) extractPDF(ctx context.Context, data []byte) (string, error) {
	const op = "extractPDF"

	if len(data) < 4 || string(data[:4]) != "%PDF" {
		return "", wrapError(op, ErrInvalidPDF, "missing PDF header")
	}

	// Cost and latency guard: reject oversized documents before the remote
	// call. A count of 0 means the page tree is not visible to the local
	// scanner, in which case the check degrades to a warning.
	pages := countPDFPages(data)
	if pages > MaxPDFPages {
		return "", wrapError(op, ErrPageLimitExceeded, fmt.Sprintf("document has %d pages", pages))
	}
	if pages == 0 {
		s.log.Warn().Msg("could not determine PDF page count locally, proceeding without the limit check")
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  data,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := s.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", wrapError(op, ErrExtractionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return "", wrapError(op, ErrExtractionFailed, "no response from Vision API")
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return "", wrapError(op, ErrExtractionFailed, fmt.Sprintf("Vision API error: %s", fileResp.Error.Message))
	}

	var allText strings.Builder
	for _, page := range fileResp.Responses {
		if page.Error != nil {
			return "", wrapError(op, ErrExtractionFailed, fmt.Sprintf("page error: %s", page.Error.Message))
		}
		if page.FullTextAnnotation == nil {
			continue
		}
		if allText.Len() > 0 {
			allText.WriteString("\n")
		}
		allText.WriteString(page.FullTextAnnotation.Text)
	}

	text := allText.String()
	if strings.TrimSpace(text) == "" {
		s.log.Warn().Int("pages", len(fileResp.Responses)).Msg("no text detected in PDF")
		return "", nil
	}

	s.log.Info().
		Int("pages", len(fileResp.Responses)).
		Int("text_length", len(text)).
		Msg("PDF text extraction completed")
	return text, nil
}

// Close closes the underlying Vision client if it supports closing.
func (s *VisionService) Close() error {
	if closer, ok := s.client.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
