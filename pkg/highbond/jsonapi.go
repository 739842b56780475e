package highbond

// JSON:API request envelopes.

type payload struct {
	Data any `json:"data"`
}

type resource struct {
	ID            string                  `json:"id,omitempty"`
	Type          string                  `json:"type"`
	Attributes    any                     `json:"attributes,omitempty"`
	Relationships map[string]relationship `json:"relationships,omitempty"`
}

type relationship struct {
	Data any `json:"data"`
}

type identifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func toOne(id, typ string) relationship {
	return relationship{Data: identifier{ID: id, Type: typ}}
}

func toMany(ids []string, typ string) relationship {
	out := make([]identifier, 0, len(ids))
	for _, id := range ids {
		out = append(out, identifier{ID: id, Type: typ})
	}
	return relationship{Data: out}
}
