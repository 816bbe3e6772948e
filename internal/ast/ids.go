package ast

type (
	// главная сущность
	NodeID uint32
	// подсущности
	PayloadID uint32
	ParamID   uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
	NoParamID   ParamID   = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
