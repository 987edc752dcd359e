// Package quotes picks motivational quotes about language learning.
package quotes

import (
	"math/rand"
	"time"
)

// Quote is a motivational quote with its English translation.
type Quote struct {
	Text        string
	Translation string
	Author      string
}

// All is the built-in quote set.
var All = []Quote{
	{
		Text:        "El límite de tu lenguaje es el límite de tu mundo.",
		Translation: "The limit of your language is the limit of your world.",
		Author:      "Ludwig Wittgenstein",
	},
	{
		Text:        "Cada idioma es una forma diferente de ver la vida.",
		Translation: "Every language is a different way of seeing life.",
		Author:      "Federico Fellini",
	},
	{
		Text:        "Quien no conoce idiomas extranjeros nada sabe del suyo propio.",
		Translation: "He who knows no foreign languages knows nothing of his own.",
		Author:      "Johann Wolfgang von Goethe",
	},
	{
		Text:        "Un idioma diferente es una visión diferente de la vida.",
		Translation: "A different language is a different vision of life.",
		Author:      "Federico Fellini",
	},
	{
		Text:        "Aprender otro idioma no es solo aprender diferentes palabras para las mismas cosas, sino aprender otra forma de pensar sobre las cosas.",
		Translation: "Learning another language is not only learning different words for the same things, but learning another way to think about things.",
		Author:      "Flora Lewis",
	},
	{
		Text:        "Si hablas a un hombre en un idioma que entiende, eso le llega a su cabeza. Si le hablas en su idioma, eso le llega a su corazón.",
		Translation: "If you talk to a man in a language he understands, that goes to his head. If you talk to him in his language, that goes to his heart.",
		Author:      "Nelson Mandela",
	},
}

// Picker selects quotes at random.
type Picker struct {
	rnd    *rand.Rand
	quotes []Quote
}

// New returns a Picker over All seeded with the current time.
func New() *Picker {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()), All)
}

// NewWithSource returns a Picker over the given quotes using src.
func NewWithSource(src rand.Source, quotes []Quote) *Picker {
	return &Picker{rnd: rand.New(src), quotes: quotes}
}

// Pick returns a random quote, or false when there are none.
func (p *Picker) Pick() (Quote, bool) {
	if len(p.quotes) == 0 {
		return Quote{}, false
	}
	return p.quotes[p.rnd.Intn(len(p.quotes))], true
}

// ForWeek returns a stable quote for a week number so a week always shows the same one.
func ForWeek(weekNumber int) Quote {
	if weekNumber < 1 {
		weekNumber = 1
	}
	return All[(weekNumber-1)%len(All)]
}
