package gutachten

// StaticCodeTexts is the compiled-in dictionary of well-known condition codes
// and their official descriptive text. It is the lowest-precedence
// description source during reconciliation and seeds an empty code store.
var StaticCodeTexts = map[string]string{
	"155": "Das Sonderrad (gepr. Radlast) ist in Verbindung mit dieser Reifengröße nur zulässig bis zu einer zul. Achslast von 1550 kg...",
	"A01": "Nach Durchführung der Technischen Änderung ist das Fahrzeug unter Vorlage der vorliegenden ABE unverzüglich einem amtlich anerkannten Sachverständigen einer Technischen Prüfstelle vorzuführen.",
	"A02": "Die Verwendung der Rad-/Reifenkombination ist nur zulässig an Fahrzeugen mit serienmäßiger Rad-/Reifenkombination in den Größen gemäß Fahrzeugpapieren.",
	"A03": "Die Verwendung der Rad-/Reifenkombination ist nur zulässig, sofern diese in den entsprechenden Fahrzeugpapieren eingetragen ist.",
	"A04": "Die Rad-/Reifenkombination ist nur zulässig für Fahrzeugausführungen mit Allradantrieb.",
	"A05": "Die Rad-/Reifenkombination ist nur zulässig für Fahrzeugausführungen mit Heckantrieb.",
	"A06": "Die Rad-/Reifenkombination ist nur zulässig für Fahrzeugausführungen mit Frontantrieb.",
	"A07": "Die mindestens erforderlichen Geschwindigkeitsbereiche (PR-Zahl) und Tragfähigkeiten der verwendeten Reifen sind den Fahrzeugpapieren zu entnehmen.",
	"A08": "Verwendung nur zulässig an Fahrzeugen mit serienmäßiger Rad-/Reifenkombination gemäß EG-Typgenehmigung.",
	"A09": "Die Rad-/Reifenkombination ist nur an der Vorderachse zulässig.",
	"A10": "Es dürfen nur feingliedrige Schneeketten an der Hinterachse verwendet werden.",
	"A11": "Es dürfen nur feingliedrige Schneeketten an der Antriebsachse verwendet werden.",
	"A12": "Die Verwendung von Schneeketten ist nicht zulässig.",
	"A13": "Nur zulässig für Fahrzeuge ohne Schneekettenbetrieb.",
	"A14": "Zum Auswuchten der Räder dürfen an der Felgenaußenseite nur Klebegewichte unterhalb der Felgenschulter angebracht werden.",
	"A14a": "Zum Auswuchten der Räder dürfen an der Felgenaußenseite keine Gewichte angebracht werden.",
	"A15": "Die Verwendung des Rades mit genannter Einpresstiefe ist nur zulässig, wenn das Fahrzeug serienmäßig mit Rädern dieser Einpresstiefe ausgerüstet ist.",
	"A58": "Rad-/Reifenkombination(en) nicht zulässig an Fahrzeugen mit Allradantrieb.",
	"Lim": "Nur zulässig für Limousinen-Ausführungen des Fahrzeugtyps.",
	"NoH": "Die Verwendung an Fahrzeugen mit Niveauregulierung ist nicht zulässig.",
}
