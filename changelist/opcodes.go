package changelist

// Opcode identifies one change-list instruction. The numeric values are
// part of the wire contract with the host-tree interpreter and must not be
// renumbered.
type Opcode uint32

const (
	OpSetText                     Opcode = 0
	OpRemoveSelfAndNextSiblings   Opcode = 1
	OpReplaceWith                 Opcode = 2
	OpSetAttribute                Opcode = 3
	OpRemoveAttribute             Opcode = 4
	OpPushReverseChild            Opcode = 5
	OpPopPushChild                Opcode = 6
	OpPop                         Opcode = 7
	OpAppendChild               Opcode = 8
	OpCreateTextNode            Opcode = 9
	OpCreateElement             Opcode = 10
	OpNewEventListener          Opcode = 11
	OpUpdateEventListener       Opcode = 12
	OpRemoveEventListener       Opcode = 13
	OpAddCachedString           Opcode = 14
	OpDropCachedString          Opcode = 15
	OpCreateElementNS           Opcode = 16
	OpSaveChildrenToTemporaries Opcode = 17
	OpPushChild                 Opcode = 18
	OpPushTemporary             Opcode = 19
	OpInsertBefore              Opcode = 20
	OpPopPushReverseChild       Opcode = 21
	OpRemoveChild               Opcode = 22
	OpSetClass                  Opcode = 23
	OpSaveTemplate              Opcode = 24
	OpPushTemplate              Opcode = 25
)

// OpcodeName returns the instruction's mnemonic, as used by cmd/vtreectl's
// opcode-trace dump.
func OpcodeName(op Opcode) string {
	switch op {
	case OpSetText:
		return "set_text"
	case OpRemoveSelfAndNextSiblings:
		return "remove_self_and_next_siblings"
	case OpReplaceWith:
		return "replace_with"
	case OpSetAttribute:
		return "set_attribute"
	case OpRemoveAttribute:
		return "remove_attribute"
	case OpPushReverseChild:
		return "push_reverse_child"
	case OpPopPushChild:
		return "pop_push_child"
	case OpPop:
		return "pop"
	case OpAppendChild:
		return "append_child"
	case OpCreateTextNode:
		return "create_text_node"
	case OpCreateElement:
		return "create_element"
	case OpNewEventListener:
		return "new_event_listener"
	case OpUpdateEventListener:
		return "update_event_listener"
	case OpRemoveEventListener:
		return "remove_event_listener"
	case OpAddCachedString:
		return "add_cached_string"
	case OpDropCachedString:
		return "drop_cached_string"
	case OpCreateElementNS:
		return "create_element_ns"
	case OpSaveChildrenToTemporaries:
		return "save_children_to_temporaries"
	case OpPushChild:
		return "push_child"
	case OpPushTemporary:
		return "push_temporary"
	case OpInsertBefore:
		return "insert_before"
	case OpPopPushReverseChild:
		return "pop_push_reverse_child"
	case OpRemoveChild:
		return "remove_child"
	case OpSetClass:
		return "set_class"
	case OpSaveTemplate:
		return "save_template"
	case OpPushTemplate:
		return "push_template"
	default:
		return "unknown"
	}
}

// Arity returns the number of uint32 immediates that follow op's
// discriminant in the opcode stream.
func Arity(op Opcode) int {
	switch op {
	case OpSetText, OpSetAttribute, OpCreateTextNode, OpCreateElementNS:
		return 2
	case OpRemoveAttribute, OpPushReverseChild, OpPopPushChild, OpCreateElement,
		OpRemoveEventListener, OpDropCachedString, OpPushChild, OpPushTemporary,
		OpPopPushReverseChild, OpRemoveChild, OpSetClass, OpSaveTemplate, OpPushTemplate:
		return 1
	case OpNewEventListener, OpUpdateEventListener, OpAddCachedString, OpSaveChildrenToTemporaries:
		return 3
	default:
		return 0
	}
}
