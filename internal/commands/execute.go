package commands

import "fmt"

type Result struct {
	Message string
	IsError bool
}

type Handlers struct {
	List       func(ListArgs) (Result, error)
	Create     func(CreateArgs) (Result, error)
	Delete     func(TaskArgs) (Result, error)
	DeleteName func(DeleteNameArgs) (Result, error)
	Start      func(TaskArgs) (Result, error)
	Stop       func(TaskArgs) (Result, error)
	Cancel     func(TaskArgs) (Result, error)
	Rename     func(RenameArgs) (Result, error)
	Add        func(TimeArgs) (Result, error)
	Sub        func(TimeArgs) (Result, error)
	Set        func(TimeArgs) (Result, error)
	Archive    func(TaskArgs) (Result, error)
	Clear      func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeList:
		if handlers.List == nil || cmd.List == nil {
			return missing(cmd.Type)
		}
		return handlers.List(*cmd.List)
	case TypeCreate:
		if handlers.Create == nil || cmd.Create == nil {
			return missing(cmd.Type)
		}
		return handlers.Create(*cmd.Create)
	case TypeDelete:
		return onTask(cmd, handlers.Delete)
	case TypeDeleteName:
		if handlers.DeleteName == nil || cmd.DeleteName == nil {
			return missing(cmd.Type)
		}
		return handlers.DeleteName(*cmd.DeleteName)
	case TypeStart:
		return onTask(cmd, handlers.Start)
	case TypeStop:
		return onTask(cmd, handlers.Stop)
	case TypeCancel:
		return onTask(cmd, handlers.Cancel)
	case TypeArchive:
		return onTask(cmd, handlers.Archive)
	case TypeRename:
		if handlers.Rename == nil || cmd.Rename == nil {
			return missing(cmd.Type)
		}
		return handlers.Rename(*cmd.Rename)
	case TypeAdd:
		return withTime(cmd, handlers.Add)
	case TypeSub:
		return withTime(cmd, handlers.Sub)
	case TypeSet:
		return withTime(cmd, handlers.Set)
	case TypeClear:
		if handlers.Clear == nil {
			return missing(cmd.Type)
		}
		return handlers.Clear()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func onTask(cmd Command, h func(TaskArgs) (Result, error)) (Result, error) {
	if h == nil || cmd.Task == nil {
		return missing(cmd.Type)
	}
	return h(*cmd.Task)
}

func withTime(cmd Command, h func(TimeArgs) (Result, error)) (Result, error) {
	if h == nil || cmd.Time == nil {
		return missing(cmd.Type)
	}
	return h(*cmd.Time)
}

func missing(t Type) (Result, error) {
	return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
