package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is used to decode all top-level content of a rules file.
type fileRoot struct {
	Entry   *string   `hcl:"entry,optional"`
	Opcodes []*Opcode `hcl:"opcode,block"`
	Remain  hcl.Body  `hcl:",remain"`
}

// Opcode represents an `opcode` block: one operation the runtime supports.
type Opcode struct {
	Name           string   `hcl:"name,label"`
	Description    *string  `hcl:"description,optional"`
	RequiredInputs []string `hcl:"required_inputs,optional"`
}
