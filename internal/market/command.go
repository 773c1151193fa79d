package market

import "time"

type CommandType string

const (
	CmdNominate           CommandType = "Nominate"
	CmdConfirmNomination  CommandType = "ConfirmNomination"
	CmdMarkReady          CommandType = "MarkReady"
	CmdPlaceBid           CommandType = "PlaceBid"
	CmdAcknowledge        CommandType = "Acknowledge"
	CmdRubataPass         CommandType = "RubataPass"
	CmdRubataCounterBid   CommandType = "RubataCounterBid"
	CmdWaiverNominate     CommandType = "WaiverNominate"
	CmdWaiverPass         CommandType = "WaiverPass"
	CmdWaiverFinish       CommandType = "WaiverFinish"
	CmdTimerFired         CommandType = "TimerFired"

	// Admin-only commands.
	CmdForceAllReady        CommandType = "ForceAllReady"
	CmdForceAcknowledgeAll  CommandType = "ForceAcknowledgeAll"
	CmdBotNominate          CommandType = "BotNominate"
	CmdBotConfirmNomination CommandType = "BotConfirmNomination"
	CmdBotBid               CommandType = "BotBid"
	CmdUpdateTimer          CommandType = "UpdateTimer"
	CmdCompleteAllSlots     CommandType = "CompleteAllSlots"
	CmdResetFirstMarket     CommandType = "ResetFirstMarket"
	CmdAdvancePhase         CommandType = "AdvancePhase"
)

// Command is a single client or timer intent addressed to one session.
// ActorID is the authenticated member issuing it; At is stamped by the
// session actor at dequeue so the engine never reads the clock itself.
type Command struct {
	Type      CommandType
	ActorID   MemberID
	PlayerID  PlayerID
	Amount    int
	Seconds   int
	TargetID  MemberID // BotBid: the member the bot stands in for
	AuctionID string   // TimerFired: which auction the timer was armed for
	At        time.Time
}

type EventType string

const (
	EvtPlayerNominated     EventType = "PlayerNominated"
	EvtNominationConfirmed EventType = "NominationConfirmed"
	EvtMemberReady         EventType = "MemberReady"
	EvtReadyCheckComplete  EventType = "ReadyCheckComplete"
	EvtAuctionStarted      EventType = "AuctionStarted"
	EvtBidPlaced           EventType = "BidPlaced"
	EvtAuctionCompleted    EventType = "AuctionCompleted"
	EvtAuctionUnsold       EventType = "AuctionUnsold"
	EvtMemberAcknowledged  EventType = "MemberAcknowledged"
	EvtAckComplete         EventType = "AckComplete"
	EvtTurnAdvanced        EventType = "TurnAdvanced"
	EvtStealPassed         EventType = "StealPassed"
	EvtBoardAdvanced       EventType = "BoardAdvanced"
	EvtWaiverPassed        EventType = "WaiverPassed"
	EvtWaiverFinished      EventType = "WaiverFinished"
	EvtPhaseAdvanced       EventType = "PhaseAdvanced"
	EvtSessionCompleted    EventType = "SessionCompleted"
	EvtTimerUpdated        EventType = "TimerUpdated"
	EvtMarketReset         EventType = "MarketReset"
)

type Event struct {
	Type     EventType
	MemberID MemberID
	PlayerID PlayerID
	Amount   int
	Phase    Phase
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
