package domain

import "time"

// JokeReport is a score the user gave to a joke before moving to the next one.
type JokeReport struct {
	ID    string    `json:"id"`
	Joke  string    `json:"joke"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// JokeSource identifies one of the redundant joke providers.
type JokeSource string

const (
	JokeSourceDadJoke     JokeSource = "dad_joke"
	JokeSourceChuckNorris JokeSource = "chuck_norris"
)
