// Package i18n translates the messages the console shows to operators.
// English, Portuguese and Dutch are bundled; English is the fallback for
// unknown locales and missing keys.
package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLocale        = "en"
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator maps a locale and a key to a message.
type Translator struct {
	messages map[string]map[string]string
}

func NewTranslator() *Translator {
	return &Translator{messages: getDefaultMessages()}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate looks key up in locale, then in DefaultLocale. A key missing
// from both is returned as is.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[Normalize(locale)][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supported reports whether locale has its own message set.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[Normalize(locale)]
	return ok
}

// Locales lists the bundled locales in sorted order.
func (t *Translator) Locales() []string {
	out := make([]string, 0, len(t.messages))
	for l := range t.messages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Normalize reduces a language tag to its lowercase primary subtag:
// "pt-BR" becomes "pt". An empty tag becomes DefaultLocale.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return DefaultLocale
	}
	return tag
}

// GetLocale negotiates the response locale from Accept-Language. The
// supported language with the highest q wins; ties keep header order.
func GetLocale(c *gin.Context) string {
	return negotiate(c.GetHeader(AcceptLanguageHeader), GetTranslator())
}

// Localize translates key into the locale of the request.
func Localize(c *gin.Context, key string) string {
	t := GetTranslator()
	return t.Translate(key, negotiate(c.GetHeader(AcceptLanguageHeader), t))
}

func negotiate(header string, t *Translator) string {
	best, bestQ := DefaultLocale, 0.0
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(part, ";")
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if strings.TrimSpace(tag) == "" || q <= bestQ {
			continue
		}
		if lang := Normalize(tag); t.Supported(lang) {
			best, bestQ = lang, q
		}
	}
	return best
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":                        "Invalid request",
			"error.invalid_request_body":                   "Invalid request body",
			"error.internal_error":                         "An unexpected error occurred",
			"error.not_found":                              "Not found",
			"error.rate_limit_exceeded":                    "Too many requests, please try again later",
			"error.conflict":                               "Conflict",
			"error.timeout":                                "The request took too long",
			"error.stale_batch":                            "Another batch was selected while this one was loading",
			"error.upstream":                               "The fulfillment service could not complete the request",
			"error.upstream_unavailable":                   "The fulfillment service is unavailable, please try again later",
			"error.history_disabled":                       "Confirmation history is not enabled",
			"error.request_in_flight":                      "The same request is still being processed",
			"error.audit_disabled":                         "The audit log is not enabled",
			"error.validation.allocation_incomplete":       "Every unit must be allocated to a package before confirming",
			"error.validation.order_not_found":             "Order not found in this batch",
			"error.validation.already_scanned":             "This order has already been scanned",
			"error.validation.order_not_scanned":           "Scan the order before editing its tracking numbers",
			"error.validation.tracking_not_ready":          "Every order needs at least one tracking number and no blank entries",
			"error.validation.tracking_index_out_of_range": "Tracking number entry does not exist",
			"error.validation.package_not_found":           "Package not found",
			"error.validation.package_not_allowed":         "Take units out of the first package before adding another",
			"error.validation.sku_not_found":               "SKU is not part of the order",
			"error.validation.quantity_out_of_range":       "Quantity must be between zero and the purchased quantity",
			"error.validation.invalid_cost":                "Cost must be a non-negative amount",
			"error.validation.invalid_courier":             "Courier is not supported",
			"error.validation.invalid_service":             "Service is not offered by the selected courier",
			"error.validation.service_required":            "Select a service before confirming",
			"error.validation.batch_not_loaded":            "Load a batch first",

			// Success messages
			"success.packages_confirmed": "Packages confirmed",
			"success.shipping_confirmed": "Shipping confirmed",
		},
		"pt": {
			// Error messages
			"error.invalid_request":                        "Requisição inválida",
			"error.invalid_request_body":                   "Corpo da requisição inválido",
			"error.internal_error":                         "Ocorreu um erro inesperado",
			"error.not_found":                              "Não encontrado",
			"error.rate_limit_exceeded":                    "Muitas requisições, tente novamente mais tarde",
			"error.conflict":                               "Conflito",
			"error.timeout":                                "A requisição demorou demais",
			"error.stale_batch":                            "Outro lote foi selecionado enquanto este carregava",
			"error.upstream":                               "O serviço de fulfillment não conseguiu concluir a requisição",
			"error.upstream_unavailable":                   "O serviço de fulfillment está indisponível, tente novamente mais tarde",
			"error.history_disabled":                       "O histórico de confirmações não está habilitado",
			"error.request_in_flight":                      "A mesma requisição ainda está sendo processada",
			"error.audit_disabled":                         "O log de auditoria não está habilitado",
			"error.validation.allocation_incomplete":       "Todas as unidades devem ser alocadas a um pacote antes de confirmar",
			"error.validation.order_not_found":             "Pedido não encontrado neste lote",
			"error.validation.already_scanned":             "Este pedido já foi escaneado",
			"error.validation.order_not_scanned":           "Escaneie o pedido antes de editar os códigos de rastreio",
			"error.validation.tracking_not_ready":          "Todo pedido precisa de pelo menos um código de rastreio e nenhum campo vazio",
			"error.validation.tracking_index_out_of_range": "O campo de rastreio não existe",
			"error.validation.package_not_found":           "Pacote não encontrado",
			"error.validation.package_not_allowed":         "Retire unidades do primeiro pacote antes de adicionar outro",
			"error.validation.sku_not_found":               "SKU não pertence ao pedido",
			"error.validation.quantity_out_of_range":       "A quantidade deve estar entre zero e a quantidade comprada",
			"error.validation.invalid_cost":                "O custo deve ser um valor não negativo",
			"error.validation.invalid_courier":             "Transportadora não suportada",
			"error.validation.invalid_service":             "Serviço não oferecido pela transportadora selecionada",
			"error.validation.service_required":            "Selecione um serviço antes de confirmar",
			"error.validation.batch_not_loaded":            "Carregue um lote primeiro",

			// Success messages
			"success.packages_confirmed": "Pacotes confirmados",
			"success.shipping_confirmed": "Envio confirmado",
		},
		"nl": {
			// Error messages
			"error.invalid_request":                        "Ongeldig verzoek",
			"error.invalid_request_body":                   "Ongeldige aanvraag body",
			"error.internal_error":                         "Er is een onverwachte fout opgetreden",
			"error.not_found":                              "Niet gevonden",
			"error.rate_limit_exceeded":                    "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":                               "Conflict",
			"error.timeout":                                "Het verzoek duurde te lang",
			"error.stale_batch":                            "Er is een andere batch gekozen tijdens het laden",
			"error.upstream":                               "De fulfillmentdienst kon het verzoek niet voltooien",
			"error.upstream_unavailable":                   "De fulfillmentdienst is niet beschikbaar, probeer het later opnieuw",
			"error.history_disabled":                       "De bevestigingsgeschiedenis is niet ingeschakeld",
			"error.request_in_flight":                      "Hetzelfde verzoek wordt nog verwerkt",
			"error.audit_disabled":                         "Het auditlogboek is niet ingeschakeld",
			"error.validation.allocation_incomplete":       "Alle eenheden moeten aan een pakket zijn toegewezen voordat je bevestigt",
			"error.validation.order_not_found":             "Order niet gevonden in deze batch",
			"error.validation.already_scanned":             "Deze order is al gescand",
			"error.validation.order_not_scanned":           "Scan de order voordat je de trackingnummers wijzigt",
			"error.validation.tracking_not_ready":          "Elke order heeft minstens één trackingnummer nodig en geen lege velden",
			"error.validation.tracking_index_out_of_range": "Het trackingnummerveld bestaat niet",
			"error.validation.package_not_found":           "Pakket niet gevonden",
			"error.validation.package_not_allowed":         "Haal eerst eenheden uit het eerste pakket voordat je er een toevoegt",
			"error.validation.sku_not_found":               "SKU hoort niet bij de order",
			"error.validation.quantity_out_of_range":       "Het aantal moet tussen nul en het gekochte aantal liggen",
			"error.validation.invalid_cost":                "De kosten moeten een niet-negatief bedrag zijn",
			"error.validation.invalid_courier":             "Vervoerder wordt niet ondersteund",
			"error.validation.invalid_service":             "Dienst wordt niet aangeboden door de gekozen vervoerder",
			"error.validation.service_required":            "Kies een dienst voordat je bevestigt",
			"error.validation.batch_not_loaded":            "Laad eerst een batch",

			// Success messages
			"success.packages_confirmed": "Pakketten bevestigd",
			"success.shipping_confirmed": "Verzending bevestigd",
		},
	}
}
