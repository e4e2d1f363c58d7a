package jsonstore

// userRecord is one value of the users file, keyed by email.
type userRecord struct {
	Name     string `json:"nome"`
	Password string `json:"senha"`
	Role     string `json:"perfil,omitempty"`
}

// ticketRecord mirrors one element of the tickets file. Number is absent on
// records written before numbers were persisted.
type ticketRecord struct {
	Number      string          `json:"numero,omitempty"`
	User        string          `json:"usuario"`
	Email       string          `json:"email"`
	Date        string          `json:"data"`
	Title       string          `json:"titulo"`
	Category    string          `json:"tipo"`
	Priority    string          `json:"prioridade"`
	Description string          `json:"descricao"`
	Files       []string        `json:"arquivos"`
	Status      string          `json:"status,omitempty"`
	Messages    []messageRecord `json:"mensagens,omitempty"`
}

type messageRecord struct {
	User string `json:"usuario"`
	Date string `json:"data"`
	Text string `json:"mensagem"`
}
