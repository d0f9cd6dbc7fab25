package world

import (
	"testing"

	"github.com/ernie/qwgo/internal/entities"
	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/mvd"
	"github.com/ernie/qwgo/internal/protoflags"
)

func sm(op protoflags.ServerOp, body any) entities.ServerMessage {
	return entities.ServerMessage{Op: op, Body: body}
}

func TestApplyMessagesUpdatesPlayerFields(t *testing.T) {
	s := New()
	s.ApplyMessages([]entities.ServerMessage{
		sm(protoflags.SvcUpdateFrags, entities.Updatefrags{PlayerNumber: 3, Frags: 7}),
		sm(protoflags.SvcUpdatePing, entities.Updateping{PlayerNumber: 3, Ping: 42}),
	})
	p, ok := s.Players[3]
	if !ok {
		t.Fatal("player 3 not created")
	}
	if p.Frags != 7 || p.Ping != 42 {
		t.Fatalf("player = %+v", p)
	}
}

func TestUpdateuserinfoRefreshesNameAndTeam(t *testing.T) {
	s := New()
	s.ApplyMessages([]entities.ServerMessage{
		sm(protoflags.SvcUpdateUserInfo, entities.Updateuserinfo{
			PlayerNumber: 1,
			UID:          99,
			Userinfo:     message.StringByte{Bytes: []byte("\\name\\Death\\team\\red")},
		}),
	})
	p := s.Players[1]
	if p.Name != "Death" || p.Team != "red" {
		t.Fatalf("name/team = %q/%q", p.Name, p.Team)
	}
	if p.UID != 99 {
		t.Fatalf("uid = %d", p.UID)
	}
}

func TestSpawnbaselineSeedsBaselineEntity(t *testing.T) {
	s := New()
	s.ApplyMessages([]entities.ServerMessage{
		sm(protoflags.SvcSpawnBaseline, entities.Spawnbaseline{
			Index: 5, ModelIndex: 2, ModelFrame: 1, Colormap: 9, Skinnum: 0,
		}),
	})
	e, ok := s.BaselineEntities[5]
	if !ok {
		t.Fatal("baseline entity 5 missing")
	}
	if e.Model != 2 || e.Frame != 1 || e.Colormap != 9 {
		t.Fatalf("entity = %+v", e)
	}
}

func u8(v uint8) *uint8 { return &v }

func TestDeltapacketentitiesAppliesEachFieldToItsOwnTarget(t *testing.T) {
	s := New()
	s.Entities[10] = Entity{Index: 10}
	s.ApplyMessages([]entities.ServerMessage{
		sm(protoflags.SvcDeltaPacketEntities, entities.Deltapacketentities{
			Entities: []entities.Packetentity{
				{EntityIndex: 10, Colormap: u8(3), Skin: u8(4), Effects: u8(5)},
			},
		}),
	})
	e := s.Entities[10]
	if e.Colormap != 3 || e.Skinnum != 4 || e.Effects != 5 {
		t.Fatalf("delta fields aliased: %+v", e)
	}
	if e.Frame != 0 {
		t.Fatalf("frame should be untouched, got %d", e.Frame)
	}
}

func TestDeltapacketentitiesRemoveErasesEntity(t *testing.T) {
	s := New()
	s.Entities[10] = Entity{Index: 10}
	s.ApplyMessages([]entities.ServerMessage{
		sm(protoflags.SvcDeltaPacketEntities, entities.Deltapacketentities{
			Entities: []entities.Packetentity{{EntityIndex: 10, Remove: true}},
		}),
	})
	if _, ok := s.Entities[10]; ok {
		t.Fatal("entity 10 should have been removed")
	}
}

func TestDeltapacketentitiesIgnoresMissingBase(t *testing.T) {
	s := New()
	s.ApplyMessages([]entities.ServerMessage{
		sm(protoflags.SvcDeltaPacketEntities, entities.Deltapacketentities{
			Entities: []entities.Packetentity{{EntityIndex: 99, Colormap: u8(1)}},
		}),
	})
	if _, ok := s.Entities[99]; ok {
		t.Fatal("entity should not be materialized from a delta with no base")
	}
}

func TestApplyMessagesMvdRoutesStatByLastTo(t *testing.T) {
	s := New()
	last := mvd.Target{To: 4, Command: protoflags.DemoCommandStats}
	s.ApplyMessagesMvd([]entities.ServerMessage{
		sm(protoflags.SvcUpdateStat, entities.Updatestat{Stat: 1, Value: 9}),
	}, last)
	p, ok := s.Players[4]
	if !ok {
		t.Fatal("player 4 not created from stat routing")
	}
	if p.Stats[1] != 9 {
		t.Fatalf("stats = %v", p.Stats)
	}
}

func TestSoundlistAndModellistAppend(t *testing.T) {
	s := New()
	s.ApplyMessages([]entities.ServerMessage{
		sm(protoflags.SvcSoundList, entities.Soundlist{Sounds: entities.StringVector{
			message.StringByte{Bytes: []byte("sound/a.wav")},
		}}),
		sm(protoflags.SvcModelList, entities.Modellist{Models: entities.StringVector{
			message.StringByte{Bytes: []byte("progs/a.mdl")},
		}}),
	})
	if len(s.Sounds) != 1 || string(s.Sounds[0].Bytes) != "sound/a.wav" {
		t.Fatalf("sounds = %v", s.Sounds)
	}
	if len(s.Models) != 1 || string(s.Models[0].Bytes) != "progs/a.mdl" {
		t.Fatalf("models = %v", s.Models)
	}
}

func TestSnapshotIsKeySorted(t *testing.T) {
	s := New()
	s.Players[9] = &Player{}
	s.Players[1] = &Player{}
	s.Players[5] = &Player{}
	snap := s.Snapshot()
	want := []uint16{1, 5, 9}
	if len(snap.PlayerIndexes) != len(want) {
		t.Fatalf("indexes = %v", snap.PlayerIndexes)
	}
	for i, idx := range want {
		if snap.PlayerIndexes[i] != idx {
			t.Fatalf("indexes = %v, want %v", snap.PlayerIndexes, want)
		}
	}
}

func TestApplyMessagesTwiceIsDeterministic(t *testing.T) {
	build := func() []entities.ServerMessage {
		return []entities.ServerMessage{
			sm(protoflags.SvcSpawnBaseline, entities.Spawnbaseline{Index: 2, ModelIndex: 1}),
			sm(protoflags.SvcUpdateFrags, entities.Updatefrags{PlayerNumber: 1, Frags: 3}),
		}
	}
	a, b := New(), New()
	a.ApplyMessages(build())
	b.ApplyMessages(build())
	if a.Players[1].Frags != b.Players[1].Frags {
		t.Fatal("reducer is not deterministic across identical inputs")
	}
	if a.BaselineEntities[2] != b.BaselineEntities[2] {
		t.Fatal("baseline entities diverged across identical inputs")
	}
}
