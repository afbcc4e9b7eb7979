package bot

import (
	"context"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types"

	"github.com/tnyamukapa/shopbot/internal/dispatch"
)

// groupOps adapts the whatsmeow group API to the narrow interface the
// group handler consumes.
type groupOps struct {
	client *whatsmeow.Client
}

func (g *groupOps) Info(_ context.Context, chatJID string) (*dispatch.GroupInfo, error) {
	jid, err := types.ParseJID(chatJID)
	if err != nil {
		return nil, err
	}
	info, err := g.client.GetGroupInfo(jid)
	if err != nil {
		return nil, err
	}

	out := &dispatch.GroupInfo{
		Name:    info.GroupName.Name,
		Topic:   info.GroupTopic.Topic,
		Created: info.GroupCreated,
	}
	for _, p := range info.Participants {
		out.Participants = append(out.Participants, dispatch.GroupParticipant{
			Phone:   p.JID.User,
			IsAdmin: p.IsAdmin || p.IsSuperAdmin,
		})
	}
	return out, nil
}

func (g *groupOps) Promote(ctx context.Context, chatJID, phone string) error {
	return g.change(ctx, chatJID, phone, whatsmeow.ParticipantChangePromote)
}

func (g *groupOps) Demote(ctx context.Context, chatJID, phone string) error {
	return g.change(ctx, chatJID, phone, whatsmeow.ParticipantChangeDemote)
}

func (g *groupOps) Remove(ctx context.Context, chatJID, phone string) error {
	return g.change(ctx, chatJID, phone, whatsmeow.ParticipantChangeRemove)
}

func (g *groupOps) change(_ context.Context, chatJID, phone string, action whatsmeow.ParticipantChange) error {
	jid, err := types.ParseJID(chatJID)
	if err != nil {
		return err
	}
	target := types.NewJID(phone, types.DefaultUserServer)
	_, err = g.client.UpdateGroupParticipants(jid, []types.JID{target}, action)
	return err
}
