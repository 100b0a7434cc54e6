package seed

// The reference catalog below is the static dataset loaded by the seeder.
// Codes are the stable handles; names and texts are display data and may be
// updated in place by re-running the seeder.

type entityRow struct {
	Code        string
	Name        string
	Description string
}

type optionRow struct {
	Text  string
	Score int
}

type scaleRow struct {
	Code    string
	Name    string
	Options []optionRow
}

type questionRow struct {
	Identifier string
	Text       string
	ScaleCode  string
}

type questionnaireRow struct {
	Code        string
	Title       string
	Description string
	Edition     string
	Questions   []questionRow
}

type linkRow struct {
	Owner   string
	Targets []string
}

var areaRows = []entityRow{
	{Code: "COG", Name: "Função Cognitiva"},
	{Code: "PER", Name: "Traços de Personalidade (Big Five)"},
	{Code: "PRO", Name: "Projetivo"},
	{Code: "NEU", Name: "Neuropsicológico"},
	{Code: "APT", Name: "Aptidão"},
	{Code: "INT", Name: "Interesses"},
	{Code: "EMO", Name: "Regulação Emocional"},
	{Code: "SOC", Name: "Habilidades Sociais e Comportamento"},
	{Code: "TDAH", Name: "Transtorno de Déficit de Atenção/Hiperatividade"},
}

var dimensionRows = []entityRow{
	{Code: "FG", Name: "Fator G (Inteligência Geral)"},
	{Code: "RL", Name: "Raciocínio Lógico"},
	{Code: "RA", Name: "Raciocínio Abstrato"},
	{Code: "RV", Name: "Raciocínio Verbal"},
	{Code: "RN", Name: "Raciocínio Numérico"},
	{Code: "RM", Name: "Raciocínio Mecânico"},
	{Code: "VP", Name: "Velocidade de Processamento"},
	{Code: "FE", Name: "Funções Executivas"},
	{Code: "MCP", Name: "Memória de Curto Prazo"},
	{Code: "MLP", Name: "Memória de Longo Prazo"},
	{Code: "AC", Name: "Atenção Concentrada"},
	{Code: "AD", Name: "Atenção Dividida"},
	{Code: "AA", Name: "Atenção Alternada"},
	{Code: "EXT", Name: "Extroversão"},
	{Code: "CSC", Name: "Conscienciosidade"},
	{Code: "OPN", Name: "Abertura à Experiência"},
	{Code: "AGR", Name: "Amabilidade"},
	{Code: "AE", Name: "Autoestima"},
	{Code: "ANX", Name: "Ansiedade"},
	{Code: "DEP", Name: "Depressão"},
	{Code: "EST", Name: "Estresse"},
	{Code: "CEXT", Name: "Controle Emocional"},
	{Code: "NAFIL", Name: "Necessidade de Afiliação"},
	{Code: "NREAL", Name: "Necessidade de Realização"},
	{Code: "REA", Name: "Interesse Realista (RIASEC)"},
	{Code: "INV", Name: "Interesse Investigativo (RIASEC)"},
	{Code: "SOC", Name: "Interesse Social (RIASEC)"},
}

var factorRows = []entityRow{
	{Code: "RE", Name: "Regulação Emocional"},
	{Code: "HI", Name: "Hiperatividade / Impulsividade"},
	{Code: "CA", Name: "Comportamento Adaptativo"},
	{Code: "A", Name: "Atenção"},
	{Code: "PENS", Name: "Flexibilidade de Pensamento e Execução"},
	{Code: "MEMR", Name: "Aprendizagem e Memória"},
	{Code: "RACV", Name: "Raciocínio Verbal Complexo"},
	{Code: "RAOB", Name: "Raciocínio Abstrato e Lógico"},
	{Code: "AVEC", Name: "Abertura à Experiência e Valores"},
	{Code: "AMAB", Name: "Amabilidade e Empatia"},
	{Code: "INTV", Name: "Interesses Vocacionais e Profissionais"},
	{Code: "SINT", Name: "Sintomas Clínicos Gerais (Afeto Negativo)"},
}

var scaleRows = []scaleRow{
	{
		Code: "LIKERT_6_PONTOS_NORMAL",
		Name: "Escala Likert 6 Pontos (Normal)",
		Options: []optionRow{
			{Text: "Nunca", Score: 1},
			{Text: "Muito Raramente", Score: 2},
			{Text: "Raramente", Score: 3},
			{Text: "Geralmente", Score: 4},
			{Text: "Frequentemente", Score: 5},
			{Text: "Muito Frequentemente", Score: 6},
		},
	},
	{
		Code: "LIKERT_6_PONTOS_INVERSO",
		Name: "Escala Likert 6 Pontos (Inversa)",
		Options: []optionRow{
			{Text: "Nunca", Score: 6},
			{Text: "Muito Raramente", Score: 5},
			{Text: "Raramente", Score: 4},
			{Text: "Geralmente", Score: 3},
			{Text: "Frequentemente", Score: 2},
			{Text: "Muito Frequentemente", Score: 1},
		},
	},
	{
		Code: "LIKERT_4",
		Name: "Escala Likert 4 Pontos (Concordância)",
		Options: []optionRow{
			{Text: "Discordo Totalmente", Score: 1},
			{Text: "Discordo Parcialmente", Score: 2},
			{Text: "Concordo Parcialmente", Score: 3},
			{Text: "Concordo Totalmente", Score: 4},
		},
	},
	{
		Code: "LIKERT_5",
		Name: "Escala Likert 5 Pontos (Frequência)",
		Options: []optionRow{
			{Text: "Nunca", Score: 0},
			{Text: "Raramente", Score: 1},
			{Text: "Às Vezes", Score: 2},
			{Text: "Frequentemente", Score: 3},
			{Text: "Sempre", Score: 4},
		},
	},
	{
		Code: "YES_NO",
		Name: "Escala Binária (Sim/Não)",
		Options: []optionRow{
			{Text: "Não", Score: 0},
			{Text: "Sim", Score: 1},
		},
	},
	{
		Code: "BAI_4_PONTOS",
		Name: "Escala de Intensidade de Sintomas (0-3)",
		Options: []optionRow{
			{Text: "Absolutamente não.", Score: 0},
			{Text: "Levemente (não me incomodou muito).", Score: 1},
			{Text: "Moderadamente (foi muito desagradável).", Score: 2},
			{Text: "Gravemente (dificilmente pude suportar).", Score: 3},
		},
	},
	{
		Code: "RSES_4_PONTOS",
		Name: "Escala de Concordância RSES (1-4)",
		Options: []optionRow{
			{Text: "Discordo Fortemente", Score: 1},
			{Text: "Discordo", Score: 2},
			{Text: "Concordo", Score: 3},
			{Text: "Concordo Fortemente", Score: 4},
		},
	},
}

var questionnaireRows = []questionnaireRow{
	{
		Code:        "BAI",
		Title:       "Inventário de Ansiedade de Beck",
		Description: "Inventário de autorrelato para avaliação da intensidade de sintomas de ansiedade.",
		Edition:     "1ª edição brasileira",
		Questions: []questionRow{
			{Identifier: "1", Text: "Dormência ou formigamento", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "2", Text: "Sensação de calor", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "3", Text: "Tremores nas pernas", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "4", Text: "Incapaz de relaxar", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "5", Text: "Medo que aconteça o pior", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "6", Text: "Atordoado ou tonto", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "7", Text: "Palpitação ou aceleração do coração", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "8", Text: "Sem equilíbrio", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "9", Text: "Aterrorizado", ScaleCode: "BAI_4_PONTOS"},
			{Identifier: "10", Text: "Nervoso", ScaleCode: "BAI_4_PONTOS"},
		},
	},
	{
		Code:        "RSES",
		Title:       "Escala de Autoestima de Rosenberg",
		Description: "Escala unidimensional de autorrelato para avaliação da autoestima global.",
		Edition:     "Adaptação brasileira",
		Questions: []questionRow{
			{Identifier: "1", Text: "De um modo geral, estou satisfeito comigo mesmo.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "2", Text: "Às vezes acho que não presto para nada.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "3", Text: "Acho que tenho várias boas qualidades.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "4", Text: "Sou capaz de fazer as coisas tão bem quanto a maioria das pessoas.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "5", Text: "Acho que não tenho muito do que me orgulhar.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "6", Text: "Às vezes me sinto realmente inútil.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "7", Text: "Sinto que sou uma pessoa de valor, pelo menos tanto quanto as outras.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "8", Text: "Gostaria de ter mais respeito por mim mesmo.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "9", Text: "Considerando tudo, tenho a sensação de que sou um fracasso.", ScaleCode: "RSES_4_PONTOS"},
			{Identifier: "10", Text: "Tenho uma atitude positiva em relação a mim mesmo.", ScaleCode: "RSES_4_PONTOS"},
		},
	},
	{
		Code:        "ETDAH-PAIS",
		Title:       "Escala de TDAH - Versão para Pais",
		Description: "Escala de frequência de comportamentos associados ao TDAH, respondida pelos pais ou responsáveis.",
		Edition:     "2ª edição",
		Questions: []questionRow{
			{Identifier: "1", Text: "Tem dificuldade de prestar atenção em detalhes ou comete erros por descuido.", ScaleCode: "LIKERT_6_PONTOS_NORMAL"},
			{Identifier: "2", Text: "Tem dificuldade de manter a atenção em tarefas ou brincadeiras.", ScaleCode: "LIKERT_6_PONTOS_NORMAL"},
			{Identifier: "3", Text: "Parece não escutar quando lhe dirigem a palavra.", ScaleCode: "LIKERT_6_PONTOS_NORMAL"},
			{Identifier: "4", Text: "Mantém a calma em situações de espera prolongada.", ScaleCode: "LIKERT_6_PONTOS_INVERSO"},
			{Identifier: "5", Text: "Mexe as mãos ou os pés ou se remexe na cadeira.", ScaleCode: "LIKERT_6_PONTOS_NORMAL"},
			{Identifier: "6", Text: "Interrompe os outros ou se intromete em conversas.", ScaleCode: "LIKERT_6_PONTOS_NORMAL"},
		},
	},
	{
		Code:        "RAVEN",
		Title:       "Matrizes Progressivas de Raven",
		Description: "Teste não verbal de raciocínio analógico e fator geral de inteligência.",
		Edition:     "Escala geral",
	},
	{
		Code:        "HOLLAND",
		Title:       "Inventário de Interesses Profissionais de Holland",
		Description: "Inventário de interesses vocacionais segundo o modelo RIASEC.",
	},
	{
		Code:        "AC",
		Title:       "Teste de Atenção Concentrada",
		Description: "Teste de cancelamento para avaliação da capacidade de atenção concentrada.",
	},
}

// Area to dimension mappings, by code.
var areaDimensionLinks = []linkRow{
	{Owner: "COG", Targets: []string{"FG", "RL", "RA", "VP", "AC", "AD", "AA", "FE", "MCP", "MLP"}},
	{Owner: "PER", Targets: []string{"EXT", "CSC", "OPN", "AGR", "AE", "ANX", "NAFIL", "NREAL"}},
	{Owner: "NEU", Targets: []string{"AC", "AD", "AA", "VP", "FE", "MCP", "MLP", "CEXT"}},
	{Owner: "APT", Targets: []string{"FG", "RL", "RV", "RN", "RM"}},
	{Owner: "INT", Targets: []string{"REA", "INV", "SOC"}},
	{Owner: "EMO", Targets: []string{"ANX", "DEP", "EST", "AE", "NAFIL", "CEXT"}},
	{Owner: "SOC", Targets: []string{"EXT", "AGR", "NAFIL", "CEXT", "AE"}},
	{Owner: "TDAH", Targets: []string{"AC", "AD", "FE", "CEXT"}},
}

// Dimension to factor mappings, by code.
var dimensionFactorLinks = []linkRow{
	{Owner: "ANX", Targets: []string{"SINT"}},
	{Owner: "DEP", Targets: []string{"SINT"}},
	{Owner: "EST", Targets: []string{"SINT", "RE"}},
	{Owner: "AE", Targets: []string{"RE"}},
	{Owner: "CEXT", Targets: []string{"RE", "HI"}},
	{Owner: "AC", Targets: []string{"A"}},
	{Owner: "AD", Targets: []string{"A"}},
	{Owner: "AA", Targets: []string{"A"}},
	{Owner: "FE", Targets: []string{"PENS"}},
	{Owner: "MCP", Targets: []string{"MEMR"}},
	{Owner: "MLP", Targets: []string{"MEMR"}},
	{Owner: "RV", Targets: []string{"RACV"}},
	{Owner: "RA", Targets: []string{"RAOB"}},
	{Owner: "RL", Targets: []string{"RAOB"}},
	{Owner: "OPN", Targets: []string{"AVEC"}},
	{Owner: "AGR", Targets: []string{"AMAB"}},
	{Owner: "REA", Targets: []string{"INTV"}},
	{Owner: "INV", Targets: []string{"INTV"}},
	{Owner: "SOC", Targets: []string{"INTV"}},
}

// Area to questionnaire mappings, by code.
var areaQuestionnaireLinks = []linkRow{
	{Owner: "EMO", Targets: []string{"BAI", "RSES"}},
	{Owner: "PER", Targets: []string{"RSES"}},
	{Owner: "TDAH", Targets: []string{"ETDAH-PAIS"}},
	{Owner: "COG", Targets: []string{"RAVEN", "AC"}},
	{Owner: "APT", Targets: []string{"AC"}},
	{Owner: "INT", Targets: []string{"HOLLAND"}},
}
