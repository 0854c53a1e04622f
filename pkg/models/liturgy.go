package models

// MassMoment is a part of the Mass a song can be sung at. The string value
// is the display name stored with records.
type MassMoment string

const (
	MomentEntrada        MassMoment = "Entrada"
	MomentAtoPenitencial MassMoment = "Ato Penitencial"
	MomentGloria         MassMoment = "Glória"
	MomentSalmo          MassMoment = "Salmo"
	MomentAclamacao      MassMoment = "Aclamação"
	MomentOfertorio      MassMoment = "Ofertório"
	MomentSanto          MassMoment = "Santo"
	MomentCordeiro       MassMoment = "Cordeiro"
	MomentComunhao       MassMoment = "Comunhão"
	MomentFinal          MassMoment = "Final"
	MomentPosComunhao    MassMoment = "Pós-Comunhão"
	MomentOutro          MassMoment = "Outro"
)

// MassMoments lists every moment in liturgical order. Setlist navigation
// walks a Mass in this order.
var MassMoments = []MassMoment{
	MomentEntrada,
	MomentAtoPenitencial,
	MomentGloria,
	MomentSalmo,
	MomentAclamacao,
	MomentOfertorio,
	MomentSanto,
	MomentCordeiro,
	MomentComunhao,
	MomentFinal,
	MomentPosComunhao,
	MomentOutro,
}

type LiturgicalSeason string

const (
	SeasonAdvento    LiturgicalSeason = "Advento"
	SeasonNatal      LiturgicalSeason = "Natal"
	SeasonQuaresma   LiturgicalSeason = "Quaresma"
	SeasonPascoa     LiturgicalSeason = "Páscoa"
	SeasonTempoComum LiturgicalSeason = "Tempo Comum"
	SeasonMariano    LiturgicalSeason = "Mariano"
	SeasonFestas     LiturgicalSeason = "Festas/Solenidades"
)

var LiturgicalSeasons = []LiturgicalSeason{
	SeasonAdvento,
	SeasonNatal,
	SeasonQuaresma,
	SeasonPascoa,
	SeasonTempoComum,
	SeasonMariano,
	SeasonFestas,
}

type SetlistCategory string

const (
	CategoryMissa        SetlistCategory = "Missa"
	CategoryAdoracao     SetlistCategory = "Adoração"
	CategoryApresentacao SetlistCategory = "Apresentação"
)

// IsMass reports whether a setlist of this category is organized by Mass
// moments. Setlists saved before categories existed have an empty category
// and are treated as a Mass.
func (c SetlistCategory) IsMass() bool {
	return c == CategoryMissa || c == ""
}

type LiturgicalColor string

const (
	ColorGreen  LiturgicalColor = "green"
	ColorWhite  LiturgicalColor = "white"
	ColorRed    LiturgicalColor = "red"
	ColorPurple LiturgicalColor = "purple"
	ColorRose   LiturgicalColor = "rose"
)

// Valid reports whether c is one of the known colors or empty.
func (c LiturgicalColor) Valid() bool {
	switch c {
	case "", ColorGreen, ColorWhite, ColorRed, ColorPurple, ColorRose:
		return true
	}
	return false
}
