// Package toggle reads and flips each agent's persistent autonomy setting.
//
// Every agent maps to one strategy chosen by its config format: a dotted key
// in a nested JSON object, a set of top-level TOML keys, or nothing at all for
// agents that only accept a per-session flag. Strategies touch only the keys
// listed in the agent definition and leave the rest of the document alone.
// Enabling requires the agent to be installed; disabling never does, so a
// setting can be reverted after the agent is removed.
package toggle
