package commands

var RouterOptions = routerOptions
