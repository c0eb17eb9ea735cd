package forum

// SeedPassword is shared by every seeded account.
const SeedPassword = "123456"

// SeedAccounts are the accounts known to a fresh Directory.
var SeedAccounts = []struct {
	Identity
	Password string
}{
	{Identity{ID: 1, Name: "Maria Silva", Email: "maria@email.com", Role: RoleStudent}, SeedPassword},
	{Identity{ID: 2, Name: "Prof. Carlos", Email: "carlos@email.com", Role: RoleTeacher}, SeedPassword},
	{Identity{ID: 3, Name: "João Santos", Email: "joao@email.com", Role: RoleStudent}, SeedPassword},
}

// SeedQuestions are listed newest first, the order a ContentStore keeps them in.
// Answers and IsResolved are derived from SeedComments when loaded.
var SeedQuestions = []Question{
	{
		ID:           1,
		Title:        "Como implementar recursão em JavaScript?",
		Content:      "Estou com dificuldade para entender como funciona a recursão em JavaScript. Alguém pode me explicar com exemplos práticos?",
		Author:       "Maria Silva",
		AuthorRole:   RoleStudent,
		Tags:         []string{"javascript", "recursão", "programação"},
		Likes:        15,
		CreatedAt:    mustDate("2024-01-10"),
		LastActivity: mustDate("2024-01-12"),
	},
	{
		ID:           2,
		Title:        "Diferença entre let, const e var em JavaScript",
		Content:      "Qual é a diferença prática entre essas três formas de declarar variáveis? Quando usar cada uma?",
		Author:       "João Santos",
		AuthorRole:   RoleStudent,
		Tags:         []string{"javascript", "variáveis", "es6"},
		Likes:        23,
		CreatedAt:    mustDate("2024-01-09"),
		LastActivity: mustDate("2024-01-11"),
	},
	{
		ID:           3,
		Title:        "Como otimizar consultas SQL complexas?",
		Content:      "Tenho uma query que está muito lenta. Como posso otimizá-la usando índices e outras técnicas?",
		Author:       "Prof. Carlos",
		AuthorRole:   RoleTeacher,
		Tags:         []string{"sql", "performance", "banco-de-dados"},
		Likes:        31,
		CreatedAt:    mustDate("2024-01-08"),
		LastActivity: mustDate("2024-01-13"),
	},
	{
		ID:           4,
		Title:        "React Hooks: useEffect vs useLayoutEffect",
		Content:      "Quando devo usar useLayoutEffect ao invés de useEffect? Qual a diferença prática entre eles?",
		Author:       "Ana Costa",
		AuthorRole:   RoleStudent,
		Tags:         []string{"react", "hooks", "frontend"},
		Likes:        18,
		CreatedAt:    mustDate("2024-01-07"),
		LastActivity: mustDate("2024-01-10"),
	},
	{
		ID:           5,
		Title:        "Estruturas de dados: Quando usar Array vs LinkedList?",
		Content:      "Estou estudando estruturas de dados e não consigo entender quando é melhor usar cada uma.",
		Author:       "Pedro Lima",
		AuthorRole:   RoleStudent,
		Tags:         []string{"estruturas-de-dados", "algoritmos", "performance"},
		Likes:        12,
		CreatedAt:    mustDate("2024-01-06"),
		LastActivity: mustDate("2024-01-09"),
	},
	{
		ID:           6,
		Title:        "Como implementar autenticação JWT em Node.js?",
		Content:      "Preciso implementar um sistema de autenticação seguro usando JWT. Quais são as melhores práticas?",
		Author:       "Lucia Ferreira",
		AuthorRole:   RoleStudent,
		Tags:         []string{"nodejs", "jwt", "autenticação", "segurança"},
		Likes:        27,
		CreatedAt:    mustDate("2024-01-05"),
		LastActivity: mustDate("2024-01-12"),
	},
}

var SeedComments = map[int64][]Comment{
	1: {
		{
			ID:         1,
			Content:    "A recursão é uma técnica onde uma função chama a si mesma. É importante ter uma condição de parada para evitar loops infinitos. Aqui está um exemplo simples:\n\nfunction factorial(n) {\n  if (n <= 1) return 1; // condição de parada\n  return n * factorial(n - 1); // chamada recursiva\n}",
			Author:     "Prof. Carlos",
			AuthorRole: RoleTeacher,
			Likes:      12,
			CreatedAt:  mustDate("2024-01-11"),
			IsAccepted: true,
		},
		{
			ID:         2,
			Content:    "Complementando a resposta do professor, outro exemplo útil é a sequência de Fibonacci:\n\nfunction fibonacci(n) {\n  if (n <= 1) return n;\n  return fibonacci(n - 1) + fibonacci(n - 2);\n}",
			Author:     "Ana Costa",
			AuthorRole: RoleStudent,
			Likes:      8,
			CreatedAt:  mustDate("2024-01-12"),
		},
		{
			ID:         3,
			Content:    "Muito obrigada pelas explicações! Agora entendi melhor. A condição de parada é realmente fundamental.",
			Author:     "Maria Silva",
			AuthorRole: RoleStudent,
			Likes:      3,
			CreatedAt:  mustDate("2024-01-12"),
		},
	},
	2: {
		{
			ID:         1,
			Content:    "var tem escopo de função e sofre hoisting; let e const têm escopo de bloco. Use const por padrão e let quando precisar reatribuir.",
			Author:     "Prof. Carlos",
			AuthorRole: RoleTeacher,
			Likes:      9,
			CreatedAt:  mustDate("2024-01-10"),
			IsAccepted: true,
		},
		{
			ID:         2,
			Content:    "Vale lembrar que const não torna objetos imutáveis, só impede a reatribuição da variável.",
			Author:     "Maria Silva",
			AuthorRole: RoleStudent,
			Likes:      4,
			CreatedAt:  mustDate("2024-01-11"),
		},
	},
	3: {
		{
			ID:         1,
			Content:    "Comece olhando o plano de execução com EXPLAIN ANALYZE e crie índices nas colunas usadas nos filtros e joins.",
			Author:     "João Santos",
			AuthorRole: RoleStudent,
			Likes:      5,
			CreatedAt:  mustDate("2024-01-13"),
		},
	},
	5: {
		{
			ID:         1,
			Content:    "Array dá acesso por índice em tempo constante; LinkedList compensa quando há muitas inserções e remoções no meio da lista.",
			Author:     "Prof. Carlos",
			AuthorRole: RoleTeacher,
			Likes:      6,
			CreatedAt:  mustDate("2024-01-09"),
			IsAccepted: true,
		},
	},
	6: {
		{
			ID:         1,
			Content:    "Guarde o segredo fora do código, defina expiração curta no token e valide a assinatura em todas as rotas protegidas.",
			Author:     "Prof. Carlos",
			AuthorRole: RoleTeacher,
			Likes:      7,
			CreatedAt:  mustDate("2024-01-12"),
		},
	},
}

// NewSeededContentStore returns a store preloaded with the seed questions and comments.
func NewSeededContentStore(opts ...ContentOption) *ContentStore {
	return NewContentStore(append([]ContentOption{WithSeed(SeedQuestions, SeedComments)}, opts...)...)
}
