package content

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"shortsfactory/types"
)

// TemplateProvider is the terminal provider in the chain. It fills static
// Spanish templates with the topic, so it never fails and keeps the pipeline
// alive when every model is down.
type TemplateProvider struct{}

func NewTemplateProvider() *TemplateProvider { return &TemplateProvider{} }

func (p *TemplateProvider) Name() string { return "template" }

var scriptTemplates = []string{
	"¿Sabías esto sobre %s? Es uno de los temas más fascinantes que existen. " +
		"Los expertos llevan décadas estudiándolo y cada año descubren algo nuevo. " +
		"Lo más sorprendente es que la mayoría de las personas nunca ha oído hablar de estos detalles. " +
		"La próxima vez que alguien mencione %s, ya sabrás más que casi todo el mundo. " +
		"Sigue el canal para más datos curiosos como este.",
	"Hoy hablamos de %s, un tema que esconde más secretos de los que imaginas. " +
		"Durante años se creyó una cosa, pero la realidad resultó ser muy distinta. " +
		"Los últimos estudios revelan datos que cambian todo lo que creíamos saber. " +
		"Y esto es solo el comienzo, porque %s sigue sorprendiendo a los investigadores. " +
		"Comenta qué tema quieres ver en el próximo video.",
	"Esto es lo que nadie te cuenta sobre %s. " +
		"Parece un tema común, pero guarda historias increíbles. " +
		"Desde sus orígenes hasta hoy, %s ha cambiado la forma en que entendemos el mundo. " +
		"Si este dato te sorprendió, espera a ver lo que viene en los próximos videos. " +
		"No olvides suscribirte para no perdértelo.",
}

func (p *TemplateProvider) Generate(ctx context.Context, topic string, targetDuration float64) (*types.GeneratedContent, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "los misterios del mundo"
	}

	tmpl := scriptTemplates[int(hashTopic(topic))%len(scriptTemplates)]
	script := fmt.Sprintf(tmpl, topic, topic)

	return &types.GeneratedContent{
		Title:             fmt.Sprintf("Lo que no sabías sobre %s", topic),
		Script:            script,
		Description:       fmt.Sprintf("Datos curiosos sobre %s. #shorts #curiosidades", topic),
		Tags:              []string{"curiosidades", "datos", "shorts", "español"},
		EstimatedDuration: EstimateDuration(script),
	}, nil
}

func hashTopic(topic string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(topic)))
	return h.Sum32()
}
