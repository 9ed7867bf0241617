package config

// DefaultRules returns the built-in rule set of the Scrape runtime.
func DefaultRules() *Rules {
	r := NewRules(DefaultEntryOpcode)

	// control
	r.Add("control_repeat", "TIMES", "SUBSTACK")
	r.Add("control_repeat_until", "CONDITION", "SUBSTACK")
	r.Add("control_forever", "SUBSTACK")
	r.Add("control_wait", "DURATION")
	r.Add("control_wait_until", "CONDITION")
	r.Add("control_if", "CONDITION", "SUBSTACK")
	r.Add("control_if_else", "CONDITION", "SUBSTACK", "SUBSTACK2")
	r.Add("control_stop")

	// data
	r.Add("data_variable")
	r.Add("data_setvariableto", "VALUE")
	r.Add("data_changevariableby", "VALUE")
	r.Add("data_listcontents")
	r.Add("data_addtolist", "ITEM")
	r.Add("data_deleteoflist", "INDEX")
	r.Add("data_deletealloflist")
	r.Add("data_insertatlist", "ITEM", "INDEX")
	r.Add("data_replaceitemoflist", "ITEM", "INDEX")
	r.Add("data_itemoflist", "INDEX")
	r.Add("data_itemnumoflist", "ITEM")
	r.Add("data_lengthoflist")
	r.Add("data_listcontainsitem", "ITEM")

	// looks
	r.Add("looks_say", "MESSAGE")
	r.Add("looks_think", "MESSAGE")

	// operators
	r.Add("operator_add", "NUM1", "NUM2")
	r.Add("operator_subtract", "NUM1", "NUM2")
	r.Add("operator_multiply", "NUM1", "NUM2")
	r.Add("operator_divide", "NUM1", "NUM2")
	r.Add("operator_lt", "OPERAND1", "OPERAND2")
	r.Add("operator_equals", "OPERAND1", "OPERAND2")
	r.Add("operator_gt", "OPERAND1", "OPERAND2")
	r.Add("operator_and", "OPERAND1", "OPERAND2")
	r.Add("operator_or", "OPERAND1", "OPERAND2")
	r.Add("operator_not", "OPERAND")
	r.Add("operator_random", "FROM", "TO")
	r.Add("operator_join", "STRING1", "STRING2")
	r.Add("operator_letter_of", "LETTER", "STRING")
	r.Add("operator_length", "STRING")
	r.Add("operator_contains", "STRING1", "STRING2")
	r.Add("operator_mod", "NUM1", "NUM2")
	r.Add("operator_round", "NUM")
	r.Add("operator_mathop", "NUM")

	// sensing
	r.Add("sensing_timer")
	r.Add("sensing_resettimer")
	r.Add("sensing_current")
	r.Add("sensing_dayssince2000")
	r.Add("sensing_askandwait", "QUESTION")
	r.Add("sensing_answer")
	r.Add("sensing_username")

	return r
}
