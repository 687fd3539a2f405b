package intake

// record.go defines the normalized member record and its column mapping.
//
// Field names follow the current revision of the paper form (single "nev"
// field, "anyja_leanykori_nev", "iranyitoszam"). The older insert schema that
// split the name into nev_vezetek/nev_kereszt and carried hely/datum/alairas
// columns is retired; this field set is canonical.

// MemberRecord is one fully normalized submission, ready for storage.
//
// Boolean-like answers are normalized to 0/1 integers, year fields to a nil
// pointer when unanswered. Every text field holds "" rather than being
// absent.
type MemberRecord struct {
	Nev                     string // full name, required
	SzuletesiNev            string // birth name
	SzuletesiOrszag         string // country of birth
	SzuletesiTelepules      string // locality of birth
	SzuletesiDatum          string // ISO YYYY-MM-DD after normalization, required
	AnyjaLeanykoriNev       string // mother's maiden name
	ApaNeve                 string // father's name
	Foglalkozas             string // occupation
	KereszteloFelekezet     string // denomination of baptism
	HelybenKeresztelt       int    // baptized in this congregation, 0/1
	KeresztsegHelye         string // place of baptism if not local
	KeresztsegEve           *int   // year of baptism
	Konfirmalt              int    // confirmed, 0/1
	KonfirmaloFelekezet     string
	HelybenKonfirmalt       int // confirmed in this congregation, 0/1
	KonfirmacioHelye        string
	KonfirmacioEve          *int
	Hazas                   int // married, 0/1
	NemHazasStatusz         string
	HelybenHazassag         int // married in this congregation, 0/1
	HazassagHelye           string
	HazassagEve             *int
	HazastarsNeve           string
	Iranyitoszam            string // postal code
	Varos                   string
	UtcaHazszam             string
	EpuletEmeletAjto        string
	Telefon                 string // required, pattern-checked
	Email                   string // required
	NemZugloiTagHelyiEgyhaz string // secondary congregation membership note
	ConsentContact          int    // must be 1 at insert time
	ConsentProcessing       int    // must be 1 at insert time
}

// Columns lists the member table columns owned by the form, in insert order.
// The store appends ip and user_agent; created_at is assigned by the
// database.
var Columns = []string{
	"nev",
	"szuletesi_nev",
	"szuletesi_orszag",
	"szuletesi_telepules",
	"szuletesi_datum",
	"anyja_leanykori_nev",
	"apa_neve",
	"foglalkozas",
	"keresztelo_felekezet",
	"helyben_keresztelt",
	"keresztseg_helye",
	"keresztseg_eve",
	"konfirmalt",
	"konfirmalo_felekezet",
	"helyben_konfirmalt",
	"konfirmacio_helye",
	"konfirmacio_eve",
	"hazas",
	"nem_hazas_statusz",
	"helyben_hazassag",
	"hazassag_helye",
	"hazassag_eve",
	"hazastars_neve",
	"iranyitoszam",
	"varos",
	"utca_hazszam",
	"epulet_emelet_ajto",
	"telefon",
	"email",
	"nem_zugloi_tag_helyi_egyhaz",
	"consent_contact",
	"consent_processing",
}

// Values returns the record's values in the same order as Columns.
func (r *MemberRecord) Values() []any {
	return []any{
		r.Nev,
		r.SzuletesiNev,
		r.SzuletesiOrszag,
		r.SzuletesiTelepules,
		r.SzuletesiDatum,
		r.AnyjaLeanykoriNev,
		r.ApaNeve,
		r.Foglalkozas,
		r.KereszteloFelekezet,
		r.HelybenKeresztelt,
		r.KeresztsegHelye,
		yearValue(r.KeresztsegEve),
		r.Konfirmalt,
		r.KonfirmaloFelekezet,
		r.HelybenKonfirmalt,
		r.KonfirmacioHelye,
		yearValue(r.KonfirmacioEve),
		r.Hazas,
		r.NemHazasStatusz,
		r.HelybenHazassag,
		r.HazassagHelye,
		yearValue(r.HazassagEve),
		r.HazastarsNeve,
		r.Iranyitoszam,
		r.Varos,
		r.UtcaHazszam,
		r.EpuletEmeletAjto,
		r.Telefon,
		r.Email,
		r.NemZugloiTagHelyiEgyhaz,
		r.ConsentContact,
		r.ConsentProcessing,
	}
}

// yearValue unwraps a nullable year for parameter binding.
func yearValue(y *int) any {
	if y == nil {
		return nil
	}
	return *y
}
