// Package hcl provides the HCL implementation of the config.RulesLoader
// interface. It is responsible for parsing rules files and translating them
// into the format-agnostic config.Rules model.
//
// A rules file looks like:
//
//	entry = "event_whenflagclicked"
//
//	opcode "control_repeat" {
//	  required_inputs = ["TIMES", "SUBSTACK"]
//	}
//
//	opcode "sensing_timer" {}
package hcl
