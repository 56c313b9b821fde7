package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	CountriesLoaded       = "countries.loaded"
	CountriesTimeout      = "countries.error.timeout"
	CountriesNotFound     = "countries.error.not_found"
	CountriesOffline      = "countries.error.offline"
	CountriesServerError  = "countries.error.server"
	CountriesGenericError = "countries.error.generic"

	ErrBadRequest      = "error.bad_request"
	ErrUnauthorized    = "error.unauthorized"
	ErrForbidden       = "error.forbidden"
	ErrNotFound        = "error.not_found"
	ErrTooManyRequests = "error.too_many_requests"
	ErrClient          = "error.client"
	ErrServer          = "error.server"
	ErrCancelled       = "error.cancelled"
	ErrNetwork         = "error.network"
	ErrTimeout         = "error.timeout"
	ErrDecode          = "error.decode"
	ErrUnknown         = "error.unknown"

	FavoriteAdded       = "favorites.added"
	FavoriteRemoved     = "favorites.removed"
	FavoritesLimit      = "favorites.limit"
	ComparisonAdded     = "comparison.added"
	ComparisonRemoved   = "comparison.removed"
	ComparisonLimit     = "comparison.limit"
	ComparisonDuplicate = "comparison.duplicate"
	ComparisonCleared   = "comparison.cleared"
	FavoritesStorage    = "favorites.storage_error"
	ComparisonStorage   = "comparison.storage_error"

	ThemeLight    = "theme.light"
	ThemeDark     = "theme.dark"
	LocaleChanged = "locale.changed"
)

// UI labels.
const (
	UITitle          = "ui.title"
	UISearch         = "ui.search"
	UIAllRegions     = "ui.all_regions"
	UILoading        = "ui.loading"
	UIEmpty          = "ui.empty"
	UIName           = "ui.name"
	UICapital        = "ui.capital"
	UIRegion         = "ui.region"
	UISubregion      = "ui.subregion"
	UIPopulation     = "ui.population"
	UIArea           = "ui.area"
	UILanguages      = "ui.languages"
	UICurrencies     = "ui.currencies"
	UITimezones      = "ui.timezones"
	UIBorders        = "ui.borders"
	UISortBy         = "ui.sort_by"
	UIPage           = "ui.page"
	UIStatistics     = "ui.statistics"
	UICount          = "ui.count"
	UITotal          = "ui.total"
	UIAverage        = "ui.average"
	UILargest        = "ui.largest"
	UISmallest       = "ui.smallest"
	UIMostPopulated  = "ui.most_populated"
	UILeastPopulated = "ui.least_populated"
	UIFavorites      = "ui.favorites"
	UIComparison     = "ui.comparison"
	UINoFavorites    = "ui.no_favorites"
	UINoComparison   = "ui.no_comparison"
	UIHelp           = "ui.help"
	UIUpdated        = "ui.updated"
	UIOffline        = "ui.offline"
	UIByRegion       = "ui.by_region"
	UIDiagnostics    = "ui.diagnostics"
	UIRemoteResults  = "ui.remote_results"
	UIOfficialName   = "ui.official_name"
)

var messages = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	set := func(tag language.Tag, entries map[string]string) {
		for key, msg := range entries {
			// Keys and messages are static; SetString only fails on malformed
			// tags.
			_ = b.SetString(tag, key, msg)
		}
	}
	set(language.Spanish, spanish)
	set(language.English, english)
	return b
}

var spanish = map[string]string{
	CountriesLoaded:       "%d países cargados correctamente",
	CountriesTimeout:      "La solicitud tardó demasiado. Intenta nuevamente.",
	CountriesNotFound:     "No se encontraron datos de países.",
	CountriesOffline:      "Sin conexión a internet. Verifica tu conexión.",
	CountriesServerError:  "El servidor no está disponible. Intenta más tarde.",
	CountriesGenericError: "Error al cargar los países.",

	ErrBadRequest:      "Solicitud inválida.",
	ErrUnauthorized:    "No autorizado.",
	ErrForbidden:       "Acceso denegado.",
	ErrNotFound:        "Recurso no encontrado.",
	ErrTooManyRequests: "Demasiadas solicitudes. Espera un momento.",
	ErrClient:          "Error en la solicitud.",
	ErrServer:          "Error del servidor. Intenta más tarde.",
	ErrCancelled:       "Solicitud cancelada.",
	ErrNetwork:         "Error de conexión. Verifica tu red.",
	ErrTimeout:         "La solicitud excedió el tiempo de espera.",
	ErrDecode:          "Respuesta inválida del servidor.",
	ErrUnknown:         "Ocurrió un error inesperado.",

	FavoriteAdded:       "%s agregado a favoritos",
	FavoriteRemoved:     "%s eliminado de favoritos",
	FavoritesLimit:      "Máximo %d favoritos permitidos",
	ComparisonAdded:     "%s agregado a la comparación",
	ComparisonRemoved:   "%s eliminado de la comparación",
	ComparisonLimit:     "Máximo %d países para comparar",
	ComparisonDuplicate: "%s ya está en la comparación",
	ComparisonCleared:   "Comparación limpiada",
	FavoritesStorage:    "Error al cargar/guardar favoritos",
	ComparisonStorage:   "Error al cargar/guardar comparación",

	ThemeLight:    "Tema claro",
	ThemeDark:     "Tema oscuro",
	LocaleChanged: "Idioma: español",

	UITitle:          "Explorador de países",
	UISearch:         "Buscar por nombre o capital",
	UIAllRegions:     "Todas las regiones",
	UILoading:        "Cargando países...",
	UIEmpty:          "No hay países que coincidan con los filtros.",
	UIName:           "Nombre",
	UICapital:        "Capital",
	UIRegion:         "Región",
	UISubregion:      "Subregión",
	UIPopulation:     "Población",
	UIArea:           "Área (km²)",
	UILanguages:      "Idiomas",
	UICurrencies:     "Monedas",
	UITimezones:      "Zonas horarias",
	UIBorders:        "Fronteras",
	UISortBy:         "Orden",
	UIPage:           "Página %d de %d",
	UIStatistics:     "Estadísticas",
	UICount:          "Países",
	UITotal:          "Población total",
	UIAverage:        "Población media",
	UILargest:        "Mayor área",
	UISmallest:       "Menor área",
	UIMostPopulated:  "Más poblado",
	UILeastPopulated: "Menos poblado",
	UIFavorites:      "Favoritos",
	UIComparison:     "Comparación",
	UINoFavorites:    "Aún no hay favoritos.",
	UINoComparison:   "Agrega países con 'c' para compararlos.",
	UIHelp:           "Ayuda",
	UIUpdated:        "Actualizado %s",
	UIOffline:        "Sin conexión",
	UIByRegion:       "Países por región",
	UIDiagnostics:    "Diagnóstico",
	UIRemoteResults:  "Resultados de la búsqueda en línea",
	UIOfficialName:   "Nombre oficial",
}

var english = map[string]string{
	CountriesLoaded:       "%d countries loaded successfully",
	CountriesTimeout:      "The request took too long. Please try again.",
	CountriesNotFound:     "No country data was found.",
	CountriesOffline:      "No internet connection. Check your network.",
	CountriesServerError:  "The server is unavailable. Try again later.",
	CountriesGenericError: "Failed to load countries.",

	ErrBadRequest:      "Invalid request.",
	ErrUnauthorized:    "Unauthorized.",
	ErrForbidden:       "Access denied.",
	ErrNotFound:        "Resource not found.",
	ErrTooManyRequests: "Too many requests. Please wait a moment.",
	ErrClient:          "Request error.",
	ErrServer:          "Server error. Try again later.",
	ErrCancelled:       "Request cancelled.",
	ErrNetwork:         "Connection error. Check your network.",
	ErrTimeout:         "The request timed out.",
	ErrDecode:          "The server sent an invalid response.",
	ErrUnknown:         "An unexpected error occurred.",

	FavoriteAdded:       "%s added to favorites",
	FavoriteRemoved:     "%s removed from favorites",
	FavoritesLimit:      "At most %d favorites allowed",
	ComparisonAdded:     "%s added to comparison",
	ComparisonRemoved:   "%s removed from comparison",
	ComparisonLimit:     "At most %d countries can be compared",
	ComparisonDuplicate: "%s is already being compared",
	ComparisonCleared:   "Comparison cleared",
	FavoritesStorage:    "Could not load or save favorites",
	ComparisonStorage:   "Could not load or save the comparison",

	ThemeLight:    "Light theme",
	ThemeDark:     "Dark theme",
	LocaleChanged: "Language: English",

	UITitle:          "Countries explorer",
	UISearch:         "Search by name or capital",
	UIAllRegions:     "All regions",
	UILoading:        "Loading countries...",
	UIEmpty:          "No countries match the filters.",
	UIName:           "Name",
	UICapital:        "Capital",
	UIRegion:         "Region",
	UISubregion:      "Subregion",
	UIPopulation:     "Population",
	UIArea:           "Area (km²)",
	UILanguages:      "Languages",
	UICurrencies:     "Currencies",
	UITimezones:      "Time zones",
	UIBorders:        "Borders",
	UISortBy:         "Sort",
	UIPage:           "Page %d of %d",
	UIStatistics:     "Statistics",
	UICount:          "Countries",
	UITotal:          "Total population",
	UIAverage:        "Average population",
	UILargest:        "Largest area",
	UISmallest:       "Smallest area",
	UIMostPopulated:  "Most populated",
	UILeastPopulated: "Least populated",
	UIFavorites:      "Favorites",
	UIComparison:     "Comparison",
	UINoFavorites:    "No favorites yet.",
	UINoComparison:   "Add countries with 'c' to compare them.",
	UIHelp:           "Help",
	UIUpdated:        "Updated %s",
	UIOffline:        "Offline",
	UIByRegion:       "Countries by region",
	UIDiagnostics:    "Diagnostics",
	UIRemoteResults:  "Online search results",
	UIOfficialName:   "Official name",
}
