package joke

import (
	"context"
	"fmt"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
)

// Provider returns one joke per call.
type Provider interface {
	Name() domain.JokeSource
	Fetch(ctx context.Context) (string, error)
}

// DadJoke fetches from icanhazdadjoke.com.
type DadJoke struct {
	endpoint *fetch.Endpoint
}

// NewDadJoke creates the Dad joke provider. The API only answers JSON
// when asked for it explicitly.
func NewDadJoke(rawURL string, f *fetch.Fetcher, retry fetch.RetryConfig) *DadJoke {
	ep := fetch.NewEndpoint("Dad joke", rawURL, f, retry).
		WithHeader("Accept", "application/json")
	return &DadJoke{endpoint: ep}
}

func (p *DadJoke) Name() domain.JokeSource { return domain.JokeSourceDadJoke }

// Endpoint exposes the underlying endpoint for health reporting.
func (p *DadJoke) Endpoint() *fetch.Endpoint { return p.endpoint }

func (p *DadJoke) Fetch(ctx context.Context) (string, error) {
	var resp struct {
		Joke string `json:"joke"`
	}
	if err := p.endpoint.GetJSON(ctx, nil, &resp); err != nil {
		return "", err
	}
	if resp.Joke == "" {
		return "", &domain.NetworkError{Message: fmt.Sprintf("%s API error: empty joke", p.endpoint.Name)}
	}
	return resp.Joke, nil
}

// ChuckNorris fetches from api.chucknorris.io.
type ChuckNorris struct {
	endpoint *fetch.Endpoint
}

// NewChuckNorris creates the Chuck Norris provider.
func NewChuckNorris(rawURL string, f *fetch.Fetcher, retry fetch.RetryConfig) *ChuckNorris {
	return &ChuckNorris{endpoint: fetch.NewEndpoint("Chuck Norris", rawURL, f, retry)}
}

func (p *ChuckNorris) Name() domain.JokeSource { return domain.JokeSourceChuckNorris }

// Endpoint exposes the underlying endpoint for health reporting.
func (p *ChuckNorris) Endpoint() *fetch.Endpoint { return p.endpoint }

func (p *ChuckNorris) Fetch(ctx context.Context) (string, error) {
	var resp struct {
		Value string `json:"value"`
	}
	if err := p.endpoint.GetJSON(ctx, nil, &resp); err != nil {
		return "", err
	}
	if resp.Value == "" {
		return "", &domain.NetworkError{Message: fmt.Sprintf("%s API error: empty joke", p.endpoint.Name)}
	}
	return resp.Value, nil
}
