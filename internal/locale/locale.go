// Package locale holds the date forms and fixed page strings for each
// supported display language.
package locale

import (
	"fmt"
	"time"
)

// Messages are the fixed strings shown by the renderer and the stats projector
type Messages struct {
	NoDescription string
	NoResults     string
	LoadError     string
	LoadErrorHint string
	Loading       string
	Archived      string
	Updated       string
	View          string
	Clone         string
	Copied        string
	NoLanguages   string
	PublicRepos   string
	Followers     string
	Languages     string
	FilterLabels  map[string]string
}

// Locale describes how dates and fixed strings are displayed
type Locale struct {
	Tag      string
	Months   [12]string
	Messages Messages
	// dayFirst selects "02 Jan 2006" over "Jan 02, 2006"
	dayFirst bool
}

// English is the default locale
var English = &Locale{
	Tag:    "en",
	Months: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Messages: Messages{
		NoDescription: "No description available.",
		NoResults:     "No repository matches your search.",
		LoadError:     "Error while loading GitHub repositories.",
		LoadErrorHint: "Please try again later.",
		Loading:       "Loading repositories...",
		Archived:      "ARCHIVED",
		Updated:       "Updated",
		View:          "View",
		Clone:         "Clone",
		Copied:        "Clone URL copied!",
		NoLanguages:   "No language detected.",
		PublicRepos:   "Public repos",
		Followers:     "Followers",
		Languages:     "Languages",
		FilterLabels: map[string]string{
			"all": "All", "starred": "Starred", "archived": "Archived", "recent": "Recent",
		},
	},
}

// French is the locale of the first, French-language version of the site
var French = &Locale{
	Tag:    "fr",
	Months: [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	Messages: Messages{
		NoDescription: "Aucune description disponible.",
		NoResults:     "Aucun dépôt ne correspond à votre recherche.",
		LoadError:     "Erreur lors du chargement des dépôts GitHub.",
		LoadErrorHint: "Veuillez réessayer plus tard.",
		Loading:       "Chargement des dépôts...",
		Archived:      "ARCHIVÉ",
		Updated:       "Màj le",
		View:          "Voir",
		Clone:         "Cloner",
		Copied:        "URL de clonage copiée !",
		NoLanguages:   "Aucun langage détecté.",
		PublicRepos:   "Public repos",
		Followers:     "Followers",
		Languages:     "Langages",
		FilterLabels: map[string]string{
			"all": "Tous", "starred": "Populaires", "archived": "Archivés", "recent": "Récents",
		},
	},
	dayFirst: true,
}

// Lookup returns the locale for tag, defaulting to English
func Lookup(tag string) *Locale {
	if tag == French.Tag {
		return French
	}
	return English
}

// ShortMonth returns the abbreviated month name of t
func (l *Locale) ShortMonth(t time.Time) string {
	return l.Months[t.Month()-1]
}

// ShortDate formats t as a short date with a two-digit day
func (l *Locale) ShortDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	if l.dayFirst {
		return fmt.Sprintf("%02d %s %d", t.Day(), l.ShortMonth(t), t.Year())
	}
	return fmt.Sprintf("%s %02d, %d", l.ShortMonth(t), t.Day(), t.Year())
}
