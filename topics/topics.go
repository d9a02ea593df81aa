package topics

import (
	"math/rand"
	"strings"
)

// Static topic pools, grouped the same way the background schemes are. The
// pipeline works fully offline with these; RSS suggestions only add variety.
var topicPools = map[string][]string{
	"ocean": {
		"los misterios del océano profundo",
		"las criaturas más extrañas del mar",
		"por qué el agua del mar es salada",
		"los gigantes del océano: las ballenas azules",
	},
	"space": {
		"los agujeros negros y el universo",
		"cuánto tardaríamos en llegar a Marte",
		"las estrellas más grandes de la galaxia",
		"qué pasaría si la Tierra dejara de girar",
	},
	"tech": {
		"cómo funciona la inteligencia artificial",
		"el primer robot de la historia",
		"qué pasa dentro de internet cada segundo",
		"los secretos de las computadoras cuánticas",
	},
	"ancient": {
		"los secretos del antiguo Egipto",
		"cómo se construyeron las pirámides",
		"la vida diaria en el imperio romano",
		"las civilizaciones perdidas de América",
	},
	"food": {
		"la historia secreta del chocolate",
		"por qué el café nos despierta",
		"la comida más picante del mundo",
		"cómo se inventó la pizza",
	},
	"sports": {
		"los récords más increíbles del deporte",
		"la historia de los juegos olímpicos",
		"por qué el fútbol es el deporte más popular",
	},
	"science": {
		"cómo funciona el cerebro humano",
		"los secretos del ADN",
		"por qué soñamos cada noche",
		"las células más extrañas del cuerpo humano",
	},
}

// StaticTopics returns every topic in the built-in pools.
func StaticTopics() []string {
	var all []string
	for _, pool := range topicPools {
		all = append(all, pool...)
	}
	return all
}

// RandomTopic picks a topic from the built-in pools.
func RandomTopic() string {
	all := StaticTopics()
	return all[rand.Intn(len(all))]
}

// TopicsForCategory returns the pool for a category name, or nil when the
// category is unknown.
func TopicsForCategory(category string) []string {
	return topicPools[strings.ToLower(category)]
}

// Categories lists the known topic categories.
func Categories() []string {
	cats := make([]string, 0, len(topicPools))
	for c := range topicPools {
		cats = append(cats, c)
	}
	return cats
}
