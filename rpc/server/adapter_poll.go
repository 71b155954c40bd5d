package server

import (
	"fmt"

	"github.com/tallykv/tallykv/rpc/common"
)

// --------------------------------------------------------------------------
// Request Dispatch
// --------------------------------------------------------------------------

// dispatch routes a deserialized request to the matching engine operation
// and builds the response message. Errors stay typed so the client can
// reconstruct the return code.
func (s *rpcServer) dispatch(msg *common.Message) *common.Message {
	switch msg.MsgType {

	case common.MsgTPollCreate:
		rec, err := s.engine.Create(msg.Question, msg.Options, msg.Requester)
		return common.NewCreateResponse(rec, err)

	case common.MsgTPollGet:
		rec, err := s.engine.Get(msg.ID)
		return common.NewGetResponse(rec, err)

	case common.MsgTPollList:
		recs, err := s.engine.List()
		return common.NewListResponse(recs, err)

	case common.MsgTPollEdit:
		if err := s.authorize(msg.ID, msg.Requester); err != nil {
			return common.NewEditResponse(nil, err)
		}
		rec, err := s.engine.Edit(msg.ID, msg.Question, msg.Options)
		return common.NewEditResponse(rec, err)

	case common.MsgTPollDelete:
		if err := s.authorize(msg.ID, msg.Requester); err != nil {
			return common.NewDeleteResponse(nil, err)
		}
		rec, err := s.engine.Delete(msg.ID)
		return common.NewDeleteResponse(rec, err)

	case common.MsgTPollVote:
		rec, err := s.engine.Vote(msg.ID, msg.Choice)
		return common.NewVoteResponse(rec, err)

	default:
		return common.NewErrorResponse(
			fmt.Sprintf("unsupported message type: %s", msg.MsgType))
	}
}

// authorize loads the record at id and asks the authorizer whether the
// requester may modify it. A missing record authorizes trivially: the
// engine produces the proper not-found error afterwards.
func (s *rpcServer) authorize(id uint64, requester string) error {
	rec, err := s.engine.Get(id)
	if err != nil {
		return nil
	}
	return s.authorizer.Authorize(requester, rec)
}
