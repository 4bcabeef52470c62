package generator

import (
	"fmt"
	"strings"

	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/dataset"
)

// Dice bounds
const (
	MinSides     = 2
	MaxSides     = 100
	DefaultSides = 6
)

var (
	kanyeQuotes = []string{
		"I am God's vessel. But my greatest pain in life is that I will never be able to see myself perform live.",
		"I still think I am the greatest.",
		"I feel like I'm too busy writing history to read it.",
		"Sometimes people write novels and they just be so wordy and so self-absorbed.",
	}
	emojis      = []string{"😀", "😂", "😍", "🥳", "🚀", "🎉", "🌟", "💡", "💻", "🤔", "👍", "💯"}
	yesNo       = []string{"Yes", "No", "Maybe", "Definitely", "Not a chance", "Ask again later"}
	coinSides   = []string{"Heads", "Tails"}
	maleNames   = []string{"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph"}
	femaleNames = []string{"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan", "Jessica"}
	lastNames   = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	eightBall   = []string{
		"It is certain.", "It is decidedly so.", "Without a doubt.", "Yes – definitely.",
		"You may rely on it.", "As I see it, yes.", "Most likely.", "Outlook good.",
		"Yes.", "Signs point to yes.", "Reply hazy, try again.", "Ask again later.",
		"Better not tell you now.", "Cannot predict now.", "Concentrate and ask again.",
		"Don't count on it.", "My reply is no.", "My sources say no.",
		"Outlook not so good.", "Very doubtful.",
	}
)

// Generator draws random content from the bundled datasets and built-in lists.
type Generator struct {
	data   *dataset.Datasets
	src    Source
	secure Source
}

type Option func(*Generator)

// WithSource replaces the source used for non-secret content.
func WithSource(src Source) Option {
	return func(g *Generator) { g.src = src }
}

// WithSecureSource replaces the source used for passwords.
func WithSecureSource(src Source) Option {
	return func(g *Generator) { g.secure = src }
}

func New(data *dataset.Datasets, opts ...Option) *Generator {
	if data == nil {
		data = &dataset.Datasets{}
	}
	g := &Generator{data: data, src: DefaultSource, secure: SecureSource}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) FamousQuote() (dataset.Quote, error) {
	return Pick(g.src, g.data.Quotes, "Famous quotes")
}

type KanyeQuote struct {
	Quote  string `json:"quote"`
	Source string `json:"source"`
}

func (g *Generator) KanyeQuote() KanyeQuote {
	return KanyeQuote{Quote: mustPick(g.src, kanyeQuotes), Source: "Kanye West (Simulated)"}
}

func (g *Generator) BadJoke() (string, error) {
	return Pick(g.src, g.data.BadJokes, "Bad jokes")
}

type Animal int

const (
	Cat Animal = iota
	Dog
)

func (a Animal) String() string {
	if a == Dog {
		return "dog"
	}
	return "cat"
}

// ParseAnimal accepts "cat" or "dog"; empty means cat.
func ParseAnimal(name string) (Animal, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cat":
		return Cat, nil
	case "dog":
		return Dog, nil
	}
	return 0, errors.Invalid.Explain("Invalid 'animal'. Supported: cat, dog")
}

func (g *Generator) AnimalFact(animal Animal) (string, error) {
	switch animal {
	case Dog:
		return Pick(g.src, g.data.DogFacts, "Dog facts")
	default:
		return Pick(g.src, g.data.CatFacts, "Cat facts")
	}
}

// HexColor returns an upper-case #RRGGBB colour.
func (g *Generator) HexColor() string {
	return fmt.Sprintf("#%06X", g.src.Int64N(0x1000000))
}

func (g *Generator) Emoji() string { return mustPick(g.src, emojis) }

func (g *Generator) YesNo() string { return mustPick(g.src, yesNo) }

func (g *Generator) Magic8Ball() string { return mustPick(g.src, eightBall) }

func (g *Generator) CoinFlip() string { return mustPick(g.src, coinSides) }

type Gender int

const (
	AnyGender Gender = iota
	Male
	Female
)

// ParseGender accepts male, female, any or an empty string.
func ParseGender(name string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "any":
		return AnyGender, nil
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return 0, errors.Invalid.Explain("Invalid 'gender'. Supported: male, female, any")
}

type Name struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func (g *Generator) Name(gender Gender) Name {
	var first string
	switch gender {
	case Male:
		first = mustPick(g.src, maleNames)
	case Female:
		first = mustPick(g.src, femaleNames)
	default:
		first = mustPick(g.src, append(append([]string(nil), maleNames...), femaleNames...))
	}
	last := mustPick(g.src, lastNames)
	return Name{FirstName: first, LastName: last, FullName: first + " " + last}
}

// RollDice rolls a die with the given number of sides.
func (g *Generator) RollDice(sides int) (int, error) {
	if sides < MinSides || sides > MaxSides {
		return 0, errors.Invalid.Explain("'sides' must be between %d and %d", MinSides, MaxSides)
	}
	return intN(g.src, sides) + 1, nil
}

// Number returns an integer in [lo, hi].
func (g *Generator) Number(lo, hi int64) (int64, error) {
	if lo > hi {
		return 0, errors.Invalid.Explain("'min' must be less than or equal to 'max'")
	}
	span := uint64(hi) - uint64(lo)
	if span >= 1<<63-1 {
		return 0, errors.Invalid.Explain("range between 'min' and 'max' is too large")
	}
	return lo + g.src.Int64N(int64(span)+1), nil
}
