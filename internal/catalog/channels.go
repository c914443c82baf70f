package catalog

// Software к какому софту относится канал.
type Software string

const (
	SoftwareMax      Software = "Max"
	SoftwareSketchUp Software = "SketchUp"
	SoftwareTexture  Software = "Texture"
	SoftwareLibrary  Software = "Software"
)

// Имена каналов, доступ к которым определяется не форматом, а планом или статусом студента.
const (
	ChannelPremiumTextures = "PREMIUM TEXTURE LIBRARY"
	ChannelMegascan        = "MEGASCAN LIBRARY FOR ARCHVIZ"
	ChannelSoftware        = "SOFTWARE LIBRARY - ARCHVIZ"
)

// Channel закрытый Telegram-канал библиотеки.
type Channel struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Link     string   `json:"link,omitempty"`
	Software Software `json:"software"`
}

var channels = []Channel{
	{Category: "3ds Max", Name: "FURNITURE MODELS", Link: "https://t.me/+kKludYZah4s1ZTU1", Software: SoftwareMax},
	{Category: "3ds Max", Name: "DECORATION MODELS", Link: "https://t.me/+Iw-k_hgquKw1NjE9", Software: SoftwareMax},
	{Category: "3ds Max", Name: "LIGHTING MODELS", Link: "https://t.me/+Z9CMWw1Av5tiNThl", Software: SoftwareMax},
	{Category: "3ds Max", Name: "KITCHEN MODELS", Link: "https://t.me/+Z-NrRs_L7ZY1NDZl", Software: SoftwareMax},
	{Category: "3ds Max", Name: "BATHROOM MODELS", Link: "https://t.me/+Y1nQ_Snq0200YzA1", Software: SoftwareMax},
	{Category: "3ds Max", Name: "DOORS AND WINDOWS MODELS", Link: "https://t.me/+0bqoDWrsCWk2NzQ1", Software: SoftwareMax},
	{Category: "3ds Max", Name: "TECH AND MUSIC MODELS", Link: "https://t.me/+Egn3HFMT8WRjOTBl", Software: SoftwareMax},
	{Category: "3ds Max", Name: "CHILDROOM MODELS", Link: "https://t.me/+S8QEZcntrHdlMzc1", Software: SoftwareMax},
	{Category: "3ds Max", Name: "STUDIO MODELS", Link: "https://t.me/+HFMkK7hWu0E4OTM9", Software: SoftwareMax},
	{Category: "3ds Max", Name: "ARCHITECTURE MODELS", Link: "https://t.me/+Fl5uePhWNDxmOGY1", Software: SoftwareMax},
	{Category: "3ds Max", Name: "TREE AND PLANTS MODELS", Link: "https://t.me/+sw2ZOLRDf65lNzM1", Software: SoftwareMax},
	{Category: "3ds Max", Name: "TRANSPORT MODELS", Link: "https://t.me/+isCr9Ma7YCY5Yzc1", Software: SoftwareMax},
	{Category: "3ds Max", Name: "RETAIL AND SPORT MODELS", Link: "https://t.me/+xBgytFIL0Uw2MmM1", Software: SoftwareMax},
	{Category: "3ds Max", Name: "PEOPLE AND ANIMAL MODELS", Link: "https://t.me/+YQPMDW8Uv4c5ZTE1", Software: SoftwareMax},

	{Category: "SketchUp", Name: "STUDIO SU MODELS", Link: "https://t.me/+38ss1I5muNA4N2I1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "PEOPLE AND ANIMAL SU MODELS", Link: "https://t.me/+IXPNrp4OUbw3NzQ1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "DOORS AND WINDOWS SU MODELS", Link: "https://t.me/+P30vSBo0F0ExOGM1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "BATHROOM SU MODELS", Link: "https://t.me/+9EFqajKIpRk0ZmM1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "FURNITURE SU MODELS", Link: "https://t.me/+OepGcLQ1uo45ZGRl", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "DECORATION SU MODELS", Link: "https://t.me/+6Z4-Ek3lb6ZiM2I1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "ARCHITECTURE SU MODELS", Link: "https://t.me/+jfudYlDbPvc0NTJl", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "TRANSPORT SU MODELS", Link: "https://t.me/+wHeah4bnM1c5NTA1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "TECH AND MUSIC SU MODELS", Link: "https://t.me/+GX5CAQgx0a8yZDc1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "KITCHEN SU MODELS", Link: "https://t.me/+Hw_rf6ch0a1hNmU9", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "LIGHTING SU MODELS", Link: "https://t.me/+_Oze5NcJQGk2ZWI1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "TREE AND PLANTS SU MODELS", Link: "https://t.me/+d9IJjPUxQOo4NzI1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "RETAIL AND SPORT SU MODELS", Link: "https://t.me/+WuUjSf5lVS1jNWU1", Software: SoftwareSketchUp},
	{Category: "SketchUp", Name: "CHILDROOM SU MODELS", Link: "https://t.me/+TcocTnTR0Q5lOTNl", Software: SoftwareSketchUp},

	{Category: "Textures", Name: ChannelPremiumTextures, Link: "https://t.me/+3D1TpiGx8lkyNDU9", Software: SoftwareTexture},
	{Category: "Textures", Name: ChannelMegascan, Link: "https://t.me/+tEIgvAcol8ViYTdl", Software: SoftwareTexture},

	{Category: "Software", Name: ChannelSoftware, Link: "https://t.me/+EigHzPWXiisyZWNl", Software: SoftwareLibrary},
}

// Channels возвращает копию списка каналов в порядке определения.
func Channels() []Channel {
	out := make([]Channel, len(channels))
	copy(out, channels)
	return out
}

// OtherClass пункт списка занятий, требующий ручного ввода названия.
const OtherClass = "Other"

var studentClasses = []string{
	"Beginner to Professional 3D Modeling Class",
	"Master Class (Architectural Modeling)",
	"Visualization Class",
	"AI Architecture Class",
	"AI ArchViz Class",
	"D5 Beginner Class",
	"D5 Master Class",
	"Visual Training Class",
	"Advanced Mapping Class",
	"Unreal Engine Class",
	OtherClass,
}

// StudentClasses занятия, слушатели которых участвуют в студенческой программе.
func StudentClasses() []string {
	out := make([]string, len(studentClasses))
	copy(out, studentClasses)
	return out
}
