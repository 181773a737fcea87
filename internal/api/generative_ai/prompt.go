package generativeAI

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// itineraryPrompt builds the Spanish planner instruction. The structured
// shape itself is enforced by itinerarySchema, not by the prose.
func itineraryPrompt(location string, days int, budget types.BudgetTier) string {
	return fmt.Sprintf(`Eres un experto planificador de viajes. Crea un itinerario detallado para un viaje a %s de %d días con un presupuesto %s.
El presupuesto puede ser 'Bajo' (enfocado en actividades gratuitas y comida económica), 'Medio' (una mezcla de atracciones populares y experiencias locales) o 'Alto' (incluyendo experiencias premium y restaurantes de alta gama).
Devuelve la respuesta en formato JSON. El plan debe incluir un título general para el viaje, una descripción corta y atractiva, la ubicación, coordenadas geográficas (lat, lng) para la ubicación principal, y un plan detallado para cada día.
Para cada día, especifica un título para el día (ej. 'Día 1: Explorando el Centro Histórico'), una lista de actividades, y sugiere 1 o 2 restaurantes que encajen con el presupuesto del día.
Para cada actividad, proporciona el nombre, sus coordenadas geográficas (lat, lng) y un emoji de Unicode que represente el tipo de actividad (ej. 🏛️ para un museo, 🍕 para un restaurante).
Para cada restaurante, proporciona su nombre, el tipo de cocina, y una URL de Google Maps para su ubicación.`, location, days, budget)
}

// ImagePrompt derives the cover-image instruction from the generated
// title and location. Exported because the trip workflow builds it from the
// itinerary response before calling GenerateTripImage.
func ImagePrompt(title, location string) string {
	return fmt.Sprintf(`Una hermosa fotografía de alta calidad para un blog de viajes de %q en %s. Estilo cinematográfico, colores vibrantes, muy detallada.`, title, location)
}

func coordinatesSchema(subject string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"lat": {Type: genai.TypeNumber, Description: "Latitud de " + subject + "."},
			"lng": {Type: genai.TypeNumber, Description: "Longitud de " + subject + "."},
		},
		Required: []string{"lat", "lng"},
	}
}

// itinerarySchema is the structured-output constraint handed to the model so
// the response can be decoded without free-text parsing.
func itinerarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"titulo":      {Type: genai.TypeString, Description: "Título creativo para el viaje."},
			"descripcion": {Type: genai.TypeString, Description: "Descripción corta y atractiva del viaje."},
			"ubicacion":   {Type: genai.TypeString, Description: "La ciudad y país del viaje."},
			"coordenadas": coordinatesSchema("la ubicación"),
			"plan": {
				Type:        genai.TypeArray,
				Description: "Array con el plan de cada día.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"dia":        {Type: genai.TypeInteger, Description: "Número del día."},
						"titulo_dia": {Type: genai.TypeString, Description: "Título temático para el día."},
						"actividades": {
							Type:        genai.TypeArray,
							Description: "Lista de actividades para el día.",
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"nombre":      {Type: genai.TypeString, Description: "Nombre de la actividad."},
									"coordenadas": coordinatesSchema("la actividad"),
									"emoji":       {Type: genai.TypeString, Description: "Emoji Unicode que representa la actividad."},
								},
								Required: []string{"nombre", "coordenadas", "emoji"},
							},
						},
						"restaurantes": {
							Type:        genai.TypeArray,
							Description: "Sugerencias de restaurantes para el día, acordes al presupuesto.",
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"nombre":      {Type: genai.TypeString, Description: "Nombre del restaurante."},
									"tipo_cocina": {Type: genai.TypeString, Description: "Ej: Italiana, Mexicana, Local."},
									"mapa_url":    {Type: genai.TypeString, Description: "URL de Google Maps para el restaurante."},
								},
								Required: []string{"nombre", "tipo_cocina"},
							},
						},
					},
					Required: []string{"dia", "titulo_dia", "actividades"},
				},
			},
		},
		Required: []string{"titulo", "descripcion", "ubicacion", "coordenadas", "plan"},
	}
}
