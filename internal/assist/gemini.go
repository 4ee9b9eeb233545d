// Package assist implements the two external collaborators — the geocoding
// lookup and the conversational query responder — on the Gemini API. Both
// are best-effort: errors are returned for the caller to degrade on, and
// neither is allowed to block a persistence guarantee.
package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/pecc/timetracking/internal/core/domain"
)

const defaultModel = "gemini-2.5-flash"

// Gemini implements ports.Geocoder and ports.Assistant.
type Gemini struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGemini builds a Gemini collaborator using apiKey against the Gemini
// API backend.
func NewGemini(ctx context.Context, apiKey string, log zerolog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("assist: create client: %w", err)
	}
	return &Gemini{client: client, model: defaultModel, log: log}, nil
}

// Lookup resolves coordinates into a one-line place description, grounding
// the answer with the Google Maps tool. When grounding metadata carries a
// maps link it is attached as the MapURI.
func (g *Gemini) Lookup(ctx context.Context, latitude, longitude float64) (domain.LocationInfo, error) {
	prompt := fmt.Sprintf(
		"Provide the most precise and concise address or place name for the coordinates: %f, %f. Limit the answer to a single line.",
		latitude, longitude,
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: &latitude, Longitude: &longitude},
			},
		},
	})
	if err != nil {
		return domain.LocationInfo{}, fmt.Errorf("assist: location lookup: %w", err)
	}

	loc := domain.LocationInfo{
		Latitude:    latitude,
		Longitude:   longitude,
		Description: strings.TrimSpace(resp.Text()),
	}
	if loc.Description == "" {
		loc.Description = fmt.Sprintf("%.4f, %.4f", latitude, longitude)
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Maps != nil && chunk.Maps.URI != "" {
				loc.MapURI = chunk.Maps.URI
				break
			}
		}
	}

	g.log.Debug().Float64("lat", latitude).Float64("lng", longitude).Str("description", loc.Description).Msg("geocoded")
	return loc, nil
}

// Ask answers an administrator question grounded on a serialized snapshot
// of the tracked data.
func (g *Gemini) Ask(ctx context.Context, question, dataContext string) (string, error) {
	system := "You are a helpful assistant for a company administrator. Your job is to answer " +
		"questions about employee time tracking and contractor data. Use the provided data to " +
		"answer accurately. The data is: " + dataContext

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(question), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("assist: chat: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
