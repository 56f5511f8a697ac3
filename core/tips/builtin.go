// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tips

// ProjectCreation is the context shown while a project is being created.
const ProjectCreation = "projectCreation"

const learnMore = "Learn more"

var builtIn = MustNew(Table{
	ProjectCreation: {
		{
			Title:    "Did you know?",
			Content:  "It’s easier to find the projects when you organize them into workspaces using Label Studio Enterprise.",
			Closable: true,
			Link: &Link{
				Label: learnMore,
				URL:   "https://docs.humansignal.com/guide/manage_projects#Create-workspaces-to-organize-projects",
			},
		},
		{
			Title:    "Unlock faster access provisioning",
			Content:  "Streamline assigning staff to multiple projects by assigning them to workspaces in Label Studio Enterprise.",
			Closable: true,
			Link: &Link{
				Label: learnMore,
				URL:   "https://docs.humansignal.com/guide/manage_projects#Add-or-remove-members-to-a-workspace",
			},
		},
		{
			Title:    "Did you know?",
			Content:  "Users with the Manager role can supervise a set of projects by assigning them to workspaces in Label Studio Enterprise.",
			Closable: true,
			Link: &Link{
				Label: learnMore,
				URL:   "https://docs.humansignal.com/guide/manage_users#Roles-in-Label-Studio-Enterprise",
			},
		},
		{
			Title:    "Did you know?",
			Content:  "You can control access to specific projects and workspaces for internal team members and external annotators using Label Studio Enterprise.",
			Closable: true,
			Link: &Link{
				Label: learnMore,
				URL:   "https://docs.humansignal.com/guide/manage_users#Roles-in-Label-Studio-Enterprise",
			},
		},
		{
			Title:    "Did you know?",
			Content:  "You can use or modify dozens or templates to configure your labeling UI, or create a custom configuration from scratch using simple XML-like tag",
			Closable: true,
			Link: &Link{
				Label: learnMore,
				URL:   "https://labelstud.io/guide/setup",
			},
		},
		{
			Title:    "Did you know?",
			Content:  "You can label tasks with collaborators by setting the minimum number of annotations to more than one. ",
			Closable: true,
			Link: &Link{
				Label: learnMore,
				URL:   "https://labelstud.io/guide/labeling#Label-with-collaborators",
			},
		},
	},
})

// Default returns the built-in tip table.
func Default() *Collection {
	return builtIn
}
