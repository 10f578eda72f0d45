package images

const commons = "https://commons.wikimedia.org/wiki/Special:FilePath/"

// DefaultCurated mapea nombres comunes (en minúsculas) a fotos conocidas.
// Incluye los nombres en español que usaba la versión web.
var DefaultCurated = map[string]string{
	"pothos":        commons + "Epipremnum_aureum_31082012.jpg",
	"potus":         commons + "Epipremnum_aureum_31082012.jpg",
	"rosa":          commons + "Rosa_rubiginosa_1.jpg",
	"rose":          commons + "Rosa_rubiginosa_1.jpg",
	"monstera":      commons + "Monstera_deliciosa3.jpg",
	"cactus":        commons + "Echinocactus_grusonii_1.jpg",
	"aloe vera":     commons + "Aloe_vera_flower_inset.png",
	"lavanda":       commons + "Lavandula_angustifolia_-_Köhler–s_Medizinal-Pflanzen-087.jpg",
	"lavender":      commons + "Lavandula_angustifolia_-_Köhler–s_Medizinal-Pflanzen-087.jpg",
	"orquidea":      commons + "Phalaenopsis_amabilis_Orchi_004.jpg",
	"orchid":        commons + "Phalaenopsis_amabilis_Orchi_004.jpg",
	"ficus":         commons + "Ficus_benjamina.jpg",
	"sansevieria":   commons + "Snake_Plant_(Sansevieria_trifasciata_'Laurentii').jpg",
	"snake plant":   commons + "Snake_Plant_(Sansevieria_trifasciata_'Laurentii').jpg",
	"girasol":       commons + "Sunflower_sky_backdrop.jpg",
	"sunflower":     commons + "Sunflower_sky_backdrop.jpg",
	"helecho":       commons + "Nephrolepis_exaltata.jpg",
	"fern":          commons + "Nephrolepis_exaltata.jpg",
	"albahaca":      commons + "Basil-Basilico-Ocimum_basilicum-albahaca.jpg",
	"basil":         commons + "Basil-Basilico-Ocimum_basilicum-albahaca.jpg",
	"menta":         commons + "Mentha_spicata_Nashville.jpg",
	"mint":          commons + "Mentha_spicata_Nashville.jpg",
	"tulipan":       commons + "Tulipa_gesneriana_2.jpg",
	"tulip":         commons + "Tulipa_gesneriana_2.jpg",
	"suculenta":     commons + "Echeveria_elegans_-_1.jpg",
	"succulent":     commons + "Echeveria_elegans_-_1.jpg",
	"geranio":       commons + "Pelargonium_zonale_1.jpg",
	"geranium":      commons + "Pelargonium_zonale_1.jpg",
	"bonsai":        commons + "Juniperus_chinensis_bonsai_26_June_2008.jpg",
	"calathea":      commons + "Calathea_orbifolia_1.jpg",
	"philodendron":  commons + "Philodendron_hederaceum_1.jpg",
	"spider plant":  commons + "Chlorophytum_comosum_1.jpg",
	"cinta":         commons + "Chlorophytum_comosum_1.jpg",
}

// DefaultGeneric se usa cuando el nombre no coincide con nada curado.
var DefaultGeneric = []string{
	commons + "Potted_plant_1.jpg",
	commons + "Houseplants.jpg",
	commons + "Plant_leaves_green.jpg",
	commons + "Garden_plants.jpg",
	commons + "Indoor_plants_in_pots.jpg",
}
