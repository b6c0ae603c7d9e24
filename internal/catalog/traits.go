package catalog

// keyTraits maps every category to its key trait. newCatalog rejects a catalog
// where this map and the record set disagree.
var keyTraits = map[ID]string{
	Irony:    "Требует понимания контекста и подтекста",
	Sarcasm:  "Всегда содержит элемент критики или насмешки",
	Satire:   "Направлена на социальные проблемы и пороки",
	Dark:     "Помогает справляться с тяжёлыми темами через смех",
	Absurd:   "Ломает логику и создаёт неожиданные связи",
	Wordplay: "Основывается на особенностях языка",
}
