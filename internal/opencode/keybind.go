package opencode

// Keybind names an opencode TUI action that can be bound to keys.
type Keybind string

const (
	KeyLeader                    Keybind = "leader"
	KeyAppExit                   Keybind = "app_exit"
	KeyEditorOpen                Keybind = "editor_open"
	KeyThemeList                 Keybind = "theme_list"
	KeySidebarToggle             Keybind = "sidebar_toggle"
	KeyScrollbarToggle           Keybind = "scrollbar_toggle"
	KeyUsernameToggle            Keybind = "username_toggle"
	KeyStatusView                Keybind = "status_view"
	KeySessionExport             Keybind = "session_export"
	KeySessionNew                Keybind = "session_new"
	KeySessionList               Keybind = "session_list"
	KeySessionTimeline           Keybind = "session_timeline"
	KeySessionFork               Keybind = "session_fork"
	KeySessionRename             Keybind = "session_rename"
	KeySessionShare              Keybind = "session_share"
	KeySessionUnshare            Keybind = "session_unshare"
	KeySessionInterrupt          Keybind = "session_interrupt"
	KeySessionCompact            Keybind = "session_compact"
	KeyMessagesPageUp            Keybind = "messages_page_up"
	KeyMessagesPageDown          Keybind = "messages_page_down"
	KeyMessagesHalfPageUp        Keybind = "messages_half_page_up"
	KeyMessagesHalfPageDown      Keybind = "messages_half_page_down"
	KeyMessagesFirst             Keybind = "messages_first"
	KeyMessagesLast              Keybind = "messages_last"
	KeyMessagesNext              Keybind = "messages_next"
	KeyMessagesPrevious          Keybind = "messages_previous"
	KeyMessagesLastUser          Keybind = "messages_last_user"
	KeyMessagesCopy              Keybind = "messages_copy"
	KeyMessagesUndo              Keybind = "messages_undo"
	KeyMessagesRedo              Keybind = "messages_redo"
	KeyMessagesToggleConceal     Keybind = "messages_toggle_conceal"
	KeyToolDetails               Keybind = "tool_details"
	KeyModelList                 Keybind = "model_list"
	KeyModelCycleRecent          Keybind = "model_cycle_recent"
	KeyModelCycleRecentReverse   Keybind = "model_cycle_recent_reverse"
	KeyModelCycleFavorite        Keybind = "model_cycle_favorite"
	KeyModelCycleFavoriteReverse Keybind = "model_cycle_favorite_reverse"
	KeyCommandList               Keybind = "command_list"
	KeyAgentList                 Keybind = "agent_list"
	KeyAgentCycle                Keybind = "agent_cycle"
	KeyAgentCycleReverse         Keybind = "agent_cycle_reverse"
	KeyVariantCycle              Keybind = "variant_cycle"
	KeyInputClear                Keybind = "input_clear"
	KeyInputPaste                Keybind = "input_paste"
	KeyInputSubmit               Keybind = "input_submit"
	KeyInputNewline              Keybind = "input_newline"
	KeyInputMoveLeft             Keybind = "input_move_left"
	KeyInputMoveRight            Keybind = "input_move_right"
	KeyInputMoveUp               Keybind = "input_move_up"
	KeyInputMoveDown             Keybind = "input_move_down"
	KeyInputSelectLeft           Keybind = "input_select_left"
	KeyInputSelectRight          Keybind = "input_select_right"
	KeyInputSelectUp             Keybind = "input_select_up"
	KeyInputSelectDown           Keybind = "input_select_down"
	KeyInputLineHome             Keybind = "input_line_home"
	KeyInputLineEnd              Keybind = "input_line_end"
	KeyInputSelectLineHome       Keybind = "input_select_line_home"
	KeyInputSelectLineEnd        Keybind = "input_select_line_end"
	KeyInputVisualLineHome       Keybind = "input_visual_line_home"
	KeyInputVisualLineEnd        Keybind = "input_visual_line_end"
	KeyInputSelectVisualLineHome Keybind = "input_select_visual_line_home"
	KeyInputSelectVisualLineEnd  Keybind = "input_select_visual_line_end"
	KeyInputBufferHome           Keybind = "input_buffer_home"
	KeyInputBufferEnd            Keybind = "input_buffer_end"
	KeyInputSelectBufferHome     Keybind = "input_select_buffer_home"
	KeyInputSelectBufferEnd      Keybind = "input_select_buffer_end"
	KeyInputDeleteLine           Keybind = "input_delete_line"
	KeyInputDeleteToLineEnd      Keybind = "input_delete_to_line_end"
	KeyInputDeleteToLineStart    Keybind = "input_delete_to_line_start"
	KeyInputBackspace            Keybind = "input_backspace"
	KeyInputDelete               Keybind = "input_delete"
	KeyInputUndo                 Keybind = "input_undo"
	KeyInputRedo                 Keybind = "input_redo"
	KeyInputWordForward          Keybind = "input_word_forward"
	KeyInputWordBackward         Keybind = "input_word_backward"
	KeyInputSelectWordForward    Keybind = "input_select_word_forward"
	KeyInputSelectWordBackward   Keybind = "input_select_word_backward"
	KeyInputDeleteWordForward    Keybind = "input_delete_word_forward"
	KeyInputDeleteWordBackward   Keybind = "input_delete_word_backward"
	KeyHistoryPrevious           Keybind = "history_previous"
	KeyHistoryNext               Keybind = "history_next"
	KeySessionChildCycle         Keybind = "session_child_cycle"
	KeySessionChildCycleReverse  Keybind = "session_child_cycle_reverse"
	KeySessionParent             Keybind = "session_parent"
	KeyTerminalSuspend           Keybind = "terminal_suspend"
	KeyTerminalTitleToggle       Keybind = "terminal_title_toggle"
	KeyTipsToggle                Keybind = "tips_toggle"
)

// Keybinds returns every known action in declaration order.
func Keybinds() []Keybind {
	return []Keybind{
		KeyLeader,
		KeyAppExit,
		KeyEditorOpen,
		KeyThemeList,
		KeySidebarToggle,
		KeyScrollbarToggle,
		KeyUsernameToggle,
		KeyStatusView,
		KeySessionExport,
		KeySessionNew,
		KeySessionList,
		KeySessionTimeline,
		KeySessionFork,
		KeySessionRename,
		KeySessionShare,
		KeySessionUnshare,
		KeySessionInterrupt,
		KeySessionCompact,
		KeyMessagesPageUp,
		KeyMessagesPageDown,
		KeyMessagesHalfPageUp,
		KeyMessagesHalfPageDown,
		KeyMessagesFirst,
		KeyMessagesLast,
		KeyMessagesNext,
		KeyMessagesPrevious,
		KeyMessagesLastUser,
		KeyMessagesCopy,
		KeyMessagesUndo,
		KeyMessagesRedo,
		KeyMessagesToggleConceal,
		KeyToolDetails,
		KeyModelList,
		KeyModelCycleRecent,
		KeyModelCycleRecentReverse,
		KeyModelCycleFavorite,
		KeyModelCycleFavoriteReverse,
		KeyCommandList,
		KeyAgentList,
		KeyAgentCycle,
		KeyAgentCycleReverse,
		KeyVariantCycle,
		KeyInputClear,
		KeyInputPaste,
		KeyInputSubmit,
		KeyInputNewline,
		KeyInputMoveLeft,
		KeyInputMoveRight,
		KeyInputMoveUp,
		KeyInputMoveDown,
		KeyInputSelectLeft,
		KeyInputSelectRight,
		KeyInputSelectUp,
		KeyInputSelectDown,
		KeyInputLineHome,
		KeyInputLineEnd,
		KeyInputSelectLineHome,
		KeyInputSelectLineEnd,
		KeyInputVisualLineHome,
		KeyInputVisualLineEnd,
		KeyInputSelectVisualLineHome,
		KeyInputSelectVisualLineEnd,
		KeyInputBufferHome,
		KeyInputBufferEnd,
		KeyInputSelectBufferHome,
		KeyInputSelectBufferEnd,
		KeyInputDeleteLine,
		KeyInputDeleteToLineEnd,
		KeyInputDeleteToLineStart,
		KeyInputBackspace,
		KeyInputDelete,
		KeyInputUndo,
		KeyInputRedo,
		KeyInputWordForward,
		KeyInputWordBackward,
		KeyInputSelectWordForward,
		KeyInputSelectWordBackward,
		KeyInputDeleteWordForward,
		KeyInputDeleteWordBackward,
		KeyHistoryPrevious,
		KeyHistoryNext,
		KeySessionChildCycle,
		KeySessionChildCycleReverse,
		KeySessionParent,
		KeyTerminalSuspend,
		KeyTerminalTitleToggle,
		KeyTipsToggle,
	}
}
