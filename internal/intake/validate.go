package intake

// validate.go checks a submission against the form rules and builds the
// normalized record in one pass.
//
// Every rule is evaluated, with no short-circuiting, so the response
// can list all corrections at once. Error messages are the Hungarian strings
// shown to the person filling in the form.

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation messages and patterns.
var (
	// phoneRe accepts Hungarian-style numbers such as "06 1 123 4567" or
	// "06301234567": leading 0, non-zero second digit, optional 1-2 digit
	// area group, optional 3-digit group, mandatory 4-digit group, each
	// group separated by at most one space.
	phoneRe = regexp.MustCompile(`^0[1-9](\s?\d{1,2})?(\s?\d{3})\s?\d{4}$`)

	// dateRe matches a birth date after its separators have been unified
	// to "/". Digits only: month 13 or day 32 pass here. That matches what
	// the form has always accepted, and tightening it would reject
	// previously valid submissions.
	dateRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)

	dateSepReplacer = strings.NewReplacer(".", "/", "-", "/")
)

const (
	msgConsentContact    = "Kapcsolattartási hozzájárulás szükséges"
	msgConsentProcessing = "Adatkezelési hozzájárulás szükséges"
	msgDateFormat        = "Dátum formátum: éééé/hh/nn"
	msgPhoneFormat       = "Telefonszám formátum hibás"
)

// requiredFields are checked for a non-empty value after trimming, in this
// order.
var requiredFields = []string{"nev", "szuletesi_datum", "telefon", "email"}

// Result is the outcome of validating one submission. Record is populated
// whether or not the submission was valid, so callers can inspect what was
// parsed; it must only be stored when Valid is true.
type Result struct {
	Valid  bool
	Errors []string
	Record MemberRecord
}

// Validate applies the form rules to a submission and normalizes it into a
// MemberRecord. It never fails: malformed value types are coerced
// best-effort, and rule violations are reported through Result.Errors.
func Validate(s Submission) Result {
	var errs []string

	// Required consents, gated on the exact tri-state set.
	if !TriState(s["consent_contact"]) {
		errs = append(errs, msgConsentContact)
	}
	if !TriState(s["consent_processing"]) {
		errs = append(errs, msgConsentProcessing)
	}

	for _, k := range requiredFields {
		if strings.TrimSpace(asString(s[k])) == "" {
			errs = append(errs, fmt.Sprintf("%s kötelező", k))
		}
	}

	// Birth date: accept YYYY/MM/DD with "/", "-" or "." separators, store
	// canonical YYYY-MM-DD. On failure the raw input is kept in the record.
	datum := strings.TrimSpace(asString(s["szuletesi_datum"]))
	if datum != "" {
		if unified := dateSepReplacer.Replace(datum); dateRe.MatchString(unified) {
			datum = strings.ReplaceAll(unified, "/", "-")
		} else {
			errs = append(errs, msgDateFormat)
		}
	}

	// Phone: hyphens count as group separators; the stored value stays as
	// submitted (trimmed), only the match is done on the unified form.
	telefon := strings.TrimSpace(asString(s["telefon"]))
	if telefon != "" {
		unified := strings.TrimSpace(strings.ReplaceAll(telefon, "-", " "))
		if !phoneRe.MatchString(unified) {
			errs = append(errs, msgPhoneFormat)
		}
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Record: MemberRecord{
			Nev:                     asString(s["nev"]),
			SzuletesiNev:            asString(s["szuletesi_nev"]),
			SzuletesiOrszag:         asString(s["szuletesi_orszag"]),
			SzuletesiTelepules:      asString(s["szuletesi_telepules"]),
			SzuletesiDatum:          datum,
			AnyjaLeanykoriNev:       asString(s["anyja_leanykori_nev"]),
			ApaNeve:                 asString(s["apa_neve"]),
			Foglalkozas:             asString(s["foglalkozas"]),
			KereszteloFelekezet:     asString(s["keresztelo_felekezet"]),
			HelybenKeresztelt:       boolInt(s["helyben_keresztelt"]),
			KeresztsegHelye:         asString(s["keresztseg_helye"]),
			KeresztsegEve:           asYear(s["keresztseg_eve"]),
			Konfirmalt:              boolInt(s["konfirmalt"]),
			KonfirmaloFelekezet:     asString(s["konfirmalo_felekezet"]),
			HelybenKonfirmalt:       boolInt(s["helyben_konfirmalt"]),
			KonfirmacioHelye:        asString(s["konfirmacio_helye"]),
			KonfirmacioEve:          asYear(s["konfirmacio_eve"]),
			Hazas:                   boolInt(s["hazas"]),
			NemHazasStatusz:         asString(s["nem_hazas_statusz"]),
			HelybenHazassag:         boolInt(s["helyben_hazassag"]),
			HazassagHelye:           asString(s["hazassag_helye"]),
			HazassagEve:             asYear(s["hazassag_eve"]),
			HazastarsNeve:           asString(s["hazastars_neve"]),
			Iranyitoszam:            asString(s["iranyitoszam"]),
			Varos:                   asString(s["varos"]),
			UtcaHazszam:             asString(s["utca_hazszam"]),
			EpuletEmeletAjto:        asString(s["epulet_emelet_ajto"]),
			Telefon:                 telefon,
			Email:                   strings.TrimSpace(asString(s["email"])),
			NemZugloiTagHelyiEgyhaz: asString(s["nem_zugloi_tag_helyi_egyhaz"]),
			ConsentContact:          boolInt(s["consent_contact"]),
			ConsentProcessing:       boolInt(s["consent_processing"]),
		},
	}
}
