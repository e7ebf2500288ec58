package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	OpenPack,
	WonderPick,
	Trade,
	Battle,
	Missions,
	ClaimMission,
	Collection,
	Search,
	Profile,
	Leaderboard,
	Help,
}
