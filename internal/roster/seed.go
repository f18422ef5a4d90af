package roster

// Default returns the compiled-in seed record. The names and titles are
// domain content shipped with the site, not structure; migration rules only
// care about the shape.
func Default() Roster {
	return Roster{
		PrisonCommand: []Entry{
			{Title: "Начальник Федеральной тюрьмы", Name: "Vasiliy Dargon", Meta: "Действующий лидер • Спец.связь: указать"},
			{Title: "Зам. начальника тюрьмы", Name: "Имя Фамилия", Meta: "Курирует внутренний режим • Спец.связь: указать"},
			{Title: "Зам. начальника тюрьмы", Name: "Имя Фамилия", Meta: "Курирует отделы и кадры • Спец.связь: указать"},
			{Title: "Зам. начальника тюрьмы", Name: "Имя Фамилия", Meta: "Курирует безопасность и КПП • Спец.связь: указать"},
		},
		DepartmentHeads: []Entry{
			{Title: "HRD — Human Resource Department", Name: "Имя Фамилия", Meta: "Набор • обучение • отчётность"},
			{Title: "FAS — Federal Advanced Squad", Name: "Имя Фамилия", Meta: "Тактика • ЧС • подавление бунтов"},
			{Title: "MED — Medical Events Department", Name: "Имя Фамилия", Meta: "Проверки • EMS • мероприятия • СМИ"},
			{Title: "PCD — Prisoners Control Department", Name: "Имя Фамилия", Meta: "Режим • конвой • КПП"},
			{Title: "IAG — Internal Affairs Group", Name: "Имя Фамилия", Meta: "Расследования • контроль • дисциплина"},
		},
		Academy: Entry{Title: "Руководитель PA", Name: "Имя Фамилия", Meta: "Теория • практика • экзамены"},
		History: History{
			Leaders: []string{
				"Vasiliy Dargon — Действующий лидер.",
				"Artem Lawson — Отстоял 1 срок.",
				"Arth Hustle — Отстоял 1 срок.",
				"Prescott Washington — Отстоял 1 срок.",
				"Jeremy Hopkins — Не справился.",
				"Enrique Harrison — Не справился.",
				"Oliver Harrison — Отстоял 1 срок.",
				"Huskar Castillio — Отстоял 1 срок.",
				"Thomas Bauer — Отстоял 1 срок.",
				"Nick Sionis — Отстоял 1 срок.",
				"Sergey Lawson — Отстоял 1 срок.",
				"Jeff Preacher — Отстоял 1 срок.",
				"Leo Nice — Не справился.",
				"Antony Gatsby — Отстоял 3 срока.",
				"Enrique Harrison — Отстоял 1 срок.",
				"Ares Provenzano — Отстоял 3 срока.",
				"Kai Ackerman — Не справился.",
				"Roberto Ecstasy — Отстоял 1 срок.",
				"Naomi Reed — Отстояла 6 сроков.",
			},
			Hall: []string{
				"Black Draken — Отстоял 2 срока.",
				"Hris Reed — Отстояла 3 срока.",
				"Jamik Draken — Отстоял 2 срока.",
				"Steve Codeine — Отстоял 2 срока.",
				"Alina Wisher — Отстояла 2 срока.",
				"Adriano Watson — Отстоял 2 срока.",
				"Jamik Draken — Отстоял 1 срок.",
				"Max Collins — Отстоял 4 срока.",
				"Leoni Draken — Отстоял 6 сроков.",
				"Mari Angelic — Отстояла 5 сроков.",
				"Kyoto Kalashnikov — Не справился.",
			},
		},
	}
}
